package jwt

type Token struct {
	Header struct {
		Algorithm string `json:"alg"`
		Type      string `json:"typ"`
	} `json:"header"`
	Payload   []byte `json:"payload"`
	Signature []byte `json:"signature"`
}

type Payload struct {
	UserID    string `json:"id"`
	Role      string `json:"role"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

const RoleAdmin = "admin"
