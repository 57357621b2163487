package db

import "testing"

func TestNormalizeDSN(t *testing.T) {
	cases := []struct {
		name, in, want string
	}{
		{"empty", "", ""},
		{"url passthrough", "postgres://u:p@localhost:5432/gestion", "postgres://u:p@localhost:5432/gestion"},
		{"url with quotes", `"postgresql://u:p@db/gestion"`, "postgresql://u:p@db/gestion"},
		{"kv gets sslmode", "host=localhost user=u dbname=gestion", "host=localhost user=u dbname=gestion sslmode=disable"},
		{"kv keeps sslmode", "host=db dbname=gestion sslmode=require", "host=db dbname=gestion sslmode=require"},
		{"kv collapses whitespace", "  host=db   dbname=gestion ", "host=db dbname=gestion sslmode=disable"},
		{"garbage passthrough", "not a dsn", "not a dsn"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := NormalizeDSN(c.in); got != c.want {
				t.Fatalf("NormalizeDSN(%q) = %q, want %q", c.in, got, c.want)
			}
		})
	}
}
