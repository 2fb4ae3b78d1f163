package pricing

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
)

// StartPricingService runs the pricing HTTP server. Reached through the
// gateway under /pricing/.
func StartPricingService(pool *pgxpool.Pool) {
	router := mux.NewRouter()
	router.Use(requestLogMiddleware)

	router.HandleFunc("/pricing/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Pricing Service is healthy"))
	}).Methods("GET")

	router.HandleFunc("/pricing/import/preview", ImportPreviewHandler(pool)).Methods("POST")
	router.HandleFunc("/pricing/import", ImportCommitHandler(pool)).Methods("POST")
	router.HandleFunc("/pricing/import/batches", ListBatchesHandler(pool)).Methods("GET")
	router.HandleFunc("/pricing/prices", CurrentPricesHandler(pool)).Methods("GET")

	log.Println("Pricing Service started on :5143")
	if err := http.ListenAndServe(":5143", router); err != nil {
		log.Fatalf("Pricing Service failed: %v", err)
	}
}

func requestLogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Printf("[INFO] [Pricing] %s %s from %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
	})
}
