package database

import "testing"

// Openがコネクションプールを設定すること（sql.Openは遅延接続のためDB不要）
func TestOpen_ConfiguresConnectionPool(t *testing.T) {
	db, err := Open("postgres://localhost:5432/dominotasks?sslmode=disable")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer db.Close()

	if got := db.Stats().MaxOpenConnections; got != maxOpenConns {
		t.Errorf("MaxOpenConnections = %d, want %d", got, maxOpenConns)
	}
}
