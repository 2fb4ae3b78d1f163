package master

import (
	"database/sql"
	"log"
	"net/http"

	allMaster "github.com/Hendyvelarius/lapiesbm-sub001/api/master/allMasters"
)

func StartMasterService(db *sql.DB) {
	mux := http.NewServeMux()
	mux.HandleFunc("/master/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Master Data Service OK"))
	})
	mux.HandleFunc("/master/materials", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			allMaster.UpsertMaterialMaster(db)(w, r)
		case http.MethodGet:
			allMaster.GetMaterialMaster(db)(w, r)
		default:
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		}
	})
	mux.HandleFunc("/master/currency-rates", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			allMaster.UpsertCurrencyRates(db)(w, r)
		case http.MethodGet:
			allMaster.GetCurrencyRates(db)(w, r)
		default:
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		}
	})
	log.Println("Master Data Service started on :2143")
	err := http.ListenAndServe(":2143", mux)
	if err != nil {
		log.Fatalf("Master Data Service failed: %v", err)
	}
}
