package route

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"tangocal/src-server/model"
	"tangocal/src-server/utils"

	"github.com/google/uuid"
)

func Categories(muxer *http.ServeMux, as *utils.AppState) {
	muxer.HandleFunc("GET /api/categories", MetricMiddleware(as,
		func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")

			appID := r.URL.Query().Get("appId")
			if appID == "" {
				appID = "1"
			}

			categories := make([]model.Category, 0)
			if err := as.BunDB.NewSelect().
				Model(&categories).
				Where("app_id = ?", appID).
				Order("category_name ASC").
				Scan(r.Context()); err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("Can't get categories"))
				slog.Error("can't get categories", "error", err)
				return
			}

			respBodyJson, err := json.Marshal(categories)
			if err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("Can't marshal response body"))
				return
			}
			w.WriteHeader(http.StatusOK)
			w.Write(respBodyJson)
		}))

	type CategoryReqBody struct {
		AppID        string `json:"appId"`
		CategoryName string `json:"categoryName"`
		Description  string `json:"description"`
		Color        string `json:"color"`
	}

	muxer.HandleFunc("POST /api/categories", MetricMiddleware(as, AdminAuthMiddleware(as,
		func(w http.ResponseWriter, r *http.Request) {
			var reqBody CategoryReqBody
			if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte("Invalid request body"))
				return
			}

			newCategory := model.Category{
				ID:           uuid.NewString(),
				AppID:        reqBody.AppID,
				CategoryName: utils.CleanupString(reqBody.CategoryName),
				Description:  reqBody.Description,
				Color:        reqBody.Color,
			}
			if err := newCategory.Upsert(r.Context(), as.BunDB); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte("Can't create category"))
				slog.Warn("can't create category", "error", err)
				return
			}
			if err := model.LogActivity(r.Context(), as.BunDB, newCategory.AppID, "category", newCategory.ID, "created"); err != nil {
				slog.Warn("can't log activity", "error", err)
			}

			w.WriteHeader(http.StatusOK)
			w.Write([]byte(newCategory.ID))
		})))

	muxer.HandleFunc("PUT /api/categories/{id}", MetricMiddleware(as, AdminAuthMiddleware(as,
		func(w http.ResponseWriter, r *http.Request) {
			categoryModel := new(model.Category)
			err := as.BunDB.NewSelect().
				Model(categoryModel).
				Where("id = ?", r.PathValue("id")).
				Scan(r.Context())
			switch {
			case errors.Is(err, sql.ErrNoRows):
				w.WriteHeader(http.StatusNotFound)
				w.Write([]byte("Category not found"))
				return
			case err != nil:
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("Can't get category"))
				slog.Error("can't get category", "error", err)
				return
			}

			var reqBody CategoryReqBody
			if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte("Invalid request body"))
				return
			}

			categoryModel.CategoryName = utils.CleanupString(reqBody.CategoryName)
			categoryModel.Description = reqBody.Description
			categoryModel.Color = reqBody.Color
			if err := categoryModel.Upsert(r.Context(), as.BunDB); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte("Can't modify category"))
				slog.Warn("can't modify category", "error", err)
				return
			}
			if err := model.LogActivity(r.Context(), as.BunDB, categoryModel.AppID, "category", categoryModel.ID, "updated"); err != nil {
				slog.Warn("can't log activity", "error", err)
			}

			w.WriteHeader(http.StatusOK)
			w.Write([]byte(categoryModel.ID))
		})))

	muxer.HandleFunc("DELETE /api/categories/{id}", MetricMiddleware(as, AdminAuthMiddleware(as,
		func(w http.ResponseWriter, r *http.Request) {
			categoryID := r.PathValue("id")
			result, err := as.BunDB.NewDelete().
				Model((*model.Category)(nil)).
				Where("id = ?", categoryID).
				Exec(r.Context())
			if err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("Can't delete category"))
				slog.Error("can't delete category", "error", err)
				return
			}
			if affected, _ := result.RowsAffected(); affected == 0 {
				w.WriteHeader(http.StatusNotFound)
				w.Write([]byte("Category not found"))
				return
			}
			if err := model.LogActivity(r.Context(), as.BunDB, "1", "category", categoryID, "deleted"); err != nil {
				slog.Warn("can't log activity", "error", err)
			}

			w.WriteHeader(http.StatusOK)
			w.Write([]byte(categoryID))
		})))
}
