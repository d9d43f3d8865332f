package loans

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"LoanPulse/api/loans/upload"
	"LoanPulse/api/middlewares"
)

// StartLoansService runs the loan-servicing feature server: file upload plus
// health. The ingestion store uses its own pgx pool; the *sql.DB handle stays
// with auth.
func StartLoansService(db *sql.DB) {
	mux := http.NewServeMux()
	mux.HandleFunc("/loans/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Loans Service is active"))
	})

	user := os.Getenv("DB_USER")
	pass := os.Getenv("DB_PASSWORD")
	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	name := os.Getenv("DB_NAME")
	if user != "" && pass != "" && host != "" && port != "" && name != "" {
		dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, pass, host, port, name)
		pgxPool, err := pgxpool.New(context.Background(), dsn)
		if err != nil {
			log.Fatalf("failed to connect to pgxpool DB: %v", err)
		}

		mux.Handle("/loans/upload", middlewares.PreValidation(upload.UploadLoanFile(pgxPool)))
	} else {
		log.Println("Loans Service: DB env vars not set, upload endpoint disabled")
	}

	port = os.Getenv("LOANS_PORT")
	if port == "" {
		port = "7143"
	}
	log.Println("Loans Service started on :" + port)
	if err := http.ListenAndServe(":"+port, mux); err != nil {
		log.Fatalf("Loans Service failed: %v", err)
	}
}
