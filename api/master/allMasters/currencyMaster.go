package allMaster

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"regexp"
	"strings"

	"github.com/Hendyvelarius/lapiesbm-sub001/api"
	"github.com/Hendyvelarius/lapiesbm-sub001/api/constants"
)

var (
	currencyCodePattern = regexp.MustCompile(`^[A-Z]{3}$`)
	periodPattern       = regexp.MustCompile(`^\d{6}$`)
)

type CurrencyRateRequest struct {
	CurrencyCode string  `json:"currency_code"`
	RateToBase   float64 `json:"rate_to_base"`
}

// UpsertCurrencyRates handles POST /master/currency-rates. Rates are scoped to
// an accounting period; re-posting a currency for the same period overwrites it.
func UpsertCurrencyRates(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			UserID string                `json:"user_id"`
			Period string                `json:"period"`
			Rates  []CurrencyRateRequest `json:"rates"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrInvalidJSON)
			return
		}
		if strings.TrimSpace(req.UserID) == "" {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrUserIDRequired)
			return
		}
		period := strings.TrimSpace(req.Period)
		if !periodPattern.MatchString(period) {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrPeriodRequired)
			return
		}
		if len(req.Rates) == 0 {
			api.RespondWithError(w, http.StatusBadRequest, "rates array is empty")
			return
		}

		var results []map[string]interface{}
		for _, rate := range req.Rates {
			code := strings.ToUpper(strings.TrimSpace(rate.CurrencyCode))
			if !currencyCodePattern.MatchString(code) {
				results = append(results, map[string]interface{}{
					constants.ValueSuccess: false,
					constants.ValueError:   constants.ErrInvalidCurrency,
					"currency_code":        rate.CurrencyCode,
				})
				continue
			}
			if rate.RateToBase <= 0 {
				results = append(results, map[string]interface{}{
					constants.ValueSuccess: false,
					constants.ValueError:   constants.ErrInvalidRate,
					"currency_code":        code,
				})
				continue
			}

			_, err := db.ExecContext(r.Context(), `
				INSERT INTO currency_rates (currency_code, period, rate_to_base, updated_by, updated_at)
				VALUES ($1, $2, $3, $4, now())
				ON CONFLICT (currency_code, period) DO UPDATE SET
					rate_to_base = EXCLUDED.rate_to_base,
					updated_by = EXCLUDED.updated_by,
					updated_at = now()`,
				code, period, rate.RateToBase, req.UserID)
			if err != nil {
				results = append(results, map[string]interface{}{
					constants.ValueSuccess: false,
					constants.ValueError:   constants.ErrDB + ": " + err.Error(),
					"currency_code":        code,
				})
				continue
			}
			results = append(results, map[string]interface{}{
				constants.ValueSuccess: true,
				"currency_code":        code,
				"period":               period,
			})
		}

		api.RespondWithPayload(w, api.IsBulkSuccess(results), "", results)
	}
}

// GetCurrencyRates handles GET /master/currency-rates?period=YYYYMM.
func GetCurrencyRates(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		period := strings.TrimSpace(r.URL.Query().Get("period"))
		if !periodPattern.MatchString(period) {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrPeriodRequired)
			return
		}

		rows, err := db.QueryContext(r.Context(), `
			SELECT currency_code, rate_to_base
			FROM currency_rates
			WHERE period = $1
			ORDER BY currency_code`, period)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, constants.ErrFailedToQuery+": "+err.Error())
			return
		}
		defer rows.Close()

		var rates []map[string]interface{}
		for rows.Next() {
			var code string
			var rate float64
			if err := rows.Scan(&code, &rate); err != nil {
				api.RespondWithError(w, http.StatusInternalServerError, constants.ErrDB+": "+err.Error())
				return
			}
			rates = append(rates, map[string]interface{}{
				"currency_code": code,
				"rate_to_base":  rate,
				"period":        period,
			})
		}
		if err := rows.Err(); err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, constants.ErrDB+": "+err.Error())
			return
		}
		api.RespondWithPayload(w, true, "", rates)
	}
}
