package metric

import (
	"log/slog"
	"time"

	"tangocal/src-server/utils"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func databaseEmptyRead(as *utils.AppState, tickerInterval *time.Duration) {
	databaseEmptyRead := promauto.NewGauge(prometheus.GaugeOpts{
		Name: "tangocal_database_empty_read_microsec",
		Help: "The latency of an empty database read in microseconds",
	})
	good := true
	if err := prometheus.Register(databaseEmptyRead); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
			slog.Error("can't register tangocal_database_empty_read_microsec metric", "error", err)
			good = false
		}
	}
	if good {
		slog.Debug("tangocal_database_empty_read_microsec metric registered")
		databaseEmptyRead.Set(0)
	}
	go func() {
		gracefulShutdownCh := as.CreateGracefulShutdownChan()
		ticker := time.NewTicker(*tickerInterval)
		defer ticker.Stop()
		for {
			select {
			case <-*gracefulShutdownCh:
				switch prometheus.Unregister(databaseEmptyRead) {
				case true:
					slog.Debug("tangocal_database_empty_read_microsec metric unregistered")
				case false:
					slog.Warn("tangocal_database_empty_read_microsec metric not registered")
				}
				return
			case <-ticker.C:
				latency, err := database(as)
				if err != nil {
					slog.Error("can't get database latency", "error", err)
					continue
				}
				databaseEmptyRead.Set(float64(latency.Microseconds()))
			}
		}
	}()
}

func databaseRead(as *utils.AppState, clearTickerInterval *time.Duration) {
	databaseRead := promauto.NewGauge(prometheus.GaugeOpts{
		Name: "tangocal_database_read_microsec",
		Help: "The latency of a database read in microseconds",
	})
	good := true
	if err := prometheus.Register(databaseRead); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
			slog.Error("can't register tangocal_database_read_microsec metric", "error", err)
			good = false
		}
	}
	if good {
		slog.Debug("tangocal_database_read_microsec metric registered")
		databaseRead.Set(0)
	}
	go func() {
		gracefulShutdownCh := as.CreateGracefulShutdownChan()
		clearTicker := time.NewTicker(*clearTickerInterval)
		defer clearTicker.Stop()
		for {
			select {
			case <-*gracefulShutdownCh:
				switch prometheus.Unregister(databaseRead) {
				case true:
					slog.Debug("tangocal_database_read_microsec metric unregistered")
				case false:
					slog.Warn("tangocal_database_read_microsec metric not registered")
				}
				return
			case latency := <-as.MetricChans.DatabaseRead:
				databaseRead.Set(latency)
				clearTicker.Reset(*clearTickerInterval)
			case <-clearTicker.C:
				databaseRead.Set(0)
			}
		}
	}()
}

func databaseWrite(as *utils.AppState, clearTickerInterval *time.Duration) {
	databaseWrite := promauto.NewGauge(prometheus.GaugeOpts{
		Name: "tangocal_database_write_microsec",
		Help: "The latency of a database write in microseconds",
	})
	good := true
	if err := prometheus.Register(databaseWrite); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
			slog.Error("can't register tangocal_database_write_microsec metric", "error", err)
			good = false
		}
	}
	if good {
		slog.Debug("tangocal_database_write_microsec metric registered")
		databaseWrite.Set(0)
	}
	go func() {
		gracefulShutdownCh := as.CreateGracefulShutdownChan()
		clearTicker := time.NewTicker(*clearTickerInterval)
		defer clearTicker.Stop()
		for {
			select {
			case <-*gracefulShutdownCh:
				switch prometheus.Unregister(databaseWrite) {
				case true:
					slog.Debug("tangocal_database_write_microsec metric unregistered")
				case false:
					slog.Warn("tangocal_database_write_microsec metric not registered")
				}
				return
			case latency := <-as.MetricChans.DatabaseWrite:
				databaseWrite.Set(latency)
				clearTicker.Reset(*clearTickerInterval)
			case <-clearTicker.C:
				databaseWrite.Set(0)
			}
		}
	}()
}

func httpRequest(as *utils.AppState, clearTickerInterval *time.Duration) {
	httpRequest := promauto.NewGauge(prometheus.GaugeOpts{
		Name: "tangocal_http_request_microsec",
		Help: "The latency of an HTTP request in microseconds",
	})
	good := true
	if err := prometheus.Register(httpRequest); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
			slog.Error("can't register tangocal_http_request_microsec metric", "error", err)
			good = false
		}
	}
	if good {
		slog.Debug("tangocal_http_request_microsec metric registered")
		httpRequest.Set(0)
	}
	go func() {
		gracefulShutdownCh := as.CreateGracefulShutdownChan()
		clearTicker := time.NewTicker(*clearTickerInterval)
		defer clearTicker.Stop()
		for {
			select {
			case <-*gracefulShutdownCh:
				switch prometheus.Unregister(httpRequest) {
				case true:
					slog.Debug("tangocal_http_request_microsec metric unregistered")
				case false:
					slog.Warn("tangocal_http_request_microsec metric not registered")
				}
				return
			case latency := <-as.MetricChans.HttpRequest:
				httpRequest.Set(latency)
				clearTicker.Reset(*clearTickerInterval)
			case <-clearTicker.C:
				httpRequest.Set(0)
			}
		}
	}()
}

func recurrenceExpansion(as *utils.AppState, clearTickerInterval *time.Duration) {
	recurrenceExpansion := promauto.NewGauge(prometheus.GaugeOpts{
		Name: "tangocal_recurrence_expansion_occurrences",
		Help: "The occurrence count of the last recurrence expansion",
	})
	good := true
	if err := prometheus.Register(recurrenceExpansion); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
			slog.Error("can't register tangocal_recurrence_expansion_occurrences metric", "error", err)
			good = false
		}
	}
	if good {
		slog.Debug("tangocal_recurrence_expansion_occurrences metric registered")
		recurrenceExpansion.Set(0)
	}
	go func() {
		gracefulShutdownCh := as.CreateGracefulShutdownChan()
		clearTicker := time.NewTicker(*clearTickerInterval)
		defer clearTicker.Stop()
		for {
			select {
			case <-*gracefulShutdownCh:
				switch prometheus.Unregister(recurrenceExpansion) {
				case true:
					slog.Debug("tangocal_recurrence_expansion_occurrences metric unregistered")
				case false:
					slog.Warn("tangocal_recurrence_expansion_occurrences metric not registered")
				}
				return
			case count := <-as.MetricChans.RecurrenceExpansion:
				recurrenceExpansion.Set(count)
				clearTicker.Reset(*clearTickerInterval)
			case <-clearTicker.C:
				recurrenceExpansion.Set(0)
			}
		}
	}()
}

func displayCacheHitRatio(as *utils.AppState, tickerInterval *time.Duration) {
	displayCacheHitRatio := promauto.NewGauge(prometheus.GaugeOpts{
		Name: "tangocal_display_cache_hit_ratio",
		Help: "The hit ratio of the display-time cache since startup",
	})
	good := true
	if err := prometheus.Register(displayCacheHitRatio); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
			slog.Error("can't register tangocal_display_cache_hit_ratio metric", "error", err)
			good = false
		}
	}
	if good {
		slog.Debug("tangocal_display_cache_hit_ratio metric registered")
		displayCacheHitRatio.Set(0)
	}
	go func() {
		gracefulShutdownCh := as.CreateGracefulShutdownChan()
		ticker := time.NewTicker(*tickerInterval)
		defer ticker.Stop()
		for {
			select {
			case <-*gracefulShutdownCh:
				switch prometheus.Unregister(displayCacheHitRatio) {
				case true:
					slog.Debug("tangocal_display_cache_hit_ratio metric unregistered")
				case false:
					slog.Warn("tangocal_display_cache_hit_ratio metric not registered")
				}
				return
			case <-ticker.C:
				hits, misses := as.TzResolver.Cache().Stats()
				if total := hits + misses; total > 0 {
					displayCacheHitRatio.Set(float64(hits) / float64(total))
				}
			}
		}
	}()
}

func Init(as *utils.AppState) {
	tickerInterval := as.Config.GetMetricCollectionInterval()
	clearTickerInterval := as.Config.GetMetricCollectionInterval() * 2

	databaseEmptyRead(as, &tickerInterval)
	databaseRead(as, &clearTickerInterval)
	databaseWrite(as, &clearTickerInterval)
	httpRequest(as, &clearTickerInterval)
	recurrenceExpansion(as, &clearTickerInterval)
	displayCacheHitRatio(as, &tickerInterval)
}
