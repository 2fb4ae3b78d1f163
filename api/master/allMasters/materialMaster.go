package allMaster

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/Hendyvelarius/lapiesbm-sub001/api"
	"github.com/Hendyvelarius/lapiesbm-sub001/api/constants"
	"github.com/Hendyvelarius/lapiesbm-sub001/api/pricing/reconcile"
	"github.com/Hendyvelarius/lapiesbm-sub001/api/utils"
	"github.com/lib/pq"
)

type MaterialMasterRequest struct {
	MaterialCode  string   `json:"material_code"`
	MaterialName  string   `json:"material_name"`
	MaterialClass string   `json:"material_class"`
	BaseUnit      string   `json:"base_unit"`
	Density       *float64 `json:"density"`
}

// UpsertMaterialMaster handles POST /master/materials. Rows are validated and
// written independently; the response carries one result per input row.
func UpsertMaterialMaster(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			UserID    string                  `json:"user_id"`
			Materials []MaterialMasterRequest `json:"materials"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrInvalidJSON)
			return
		}
		if strings.TrimSpace(req.UserID) == "" {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrUserIDRequired)
			return
		}
		if len(req.Materials) == 0 {
			api.RespondWithError(w, http.StatusBadRequest, "materials array is empty")
			return
		}

		var results []map[string]interface{}
		for _, mat := range req.Materials {
			code := strings.TrimSpace(mat.MaterialCode)
			if code == "" {
				results = append(results, map[string]interface{}{
					constants.ValueSuccess: false,
					constants.ValueError:   constants.FormatMissingFieldError("material_code"),
					"material_code":        mat.MaterialCode,
				})
				continue
			}
			class := reconcile.MaterialClass(strings.ToUpper(strings.TrimSpace(mat.MaterialClass)))
			if !class.Valid() {
				results = append(results, map[string]interface{}{
					constants.ValueSuccess: false,
					constants.ValueError:   constants.FormatFieldError("material_class", "must be BB or BK"),
					"material_code":        code,
				})
				continue
			}
			baseUnit := strings.ToUpper(strings.TrimSpace(mat.BaseUnit))
			if baseUnit != "KG" && baseUnit != "L" {
				results = append(results, map[string]interface{}{
					constants.ValueSuccess: false,
					constants.ValueError:   constants.FormatFieldError("base_unit", "must be KG or L"),
					"material_code":        code,
				})
				continue
			}
			density := 1.0
			if mat.Density != nil {
				if *mat.Density < 0 {
					results = append(results, map[string]interface{}{
						constants.ValueSuccess: false,
						constants.ValueError:   constants.FormatFieldError("density", "must not be negative"),
						"material_code":        code,
					})
					continue
				}
				density = *mat.Density
			}

			_, err := db.ExecContext(r.Context(), `
				INSERT INTO material_master (material_code, material_name, material_class, base_unit, density, updated_by, updated_at)
				VALUES ($1, $2, $3, $4, $5, $6, now())
				ON CONFLICT (material_code) DO UPDATE SET
					material_name = EXCLUDED.material_name,
					material_class = EXCLUDED.material_class,
					base_unit = EXCLUDED.base_unit,
					density = EXCLUDED.density,
					updated_by = EXCLUDED.updated_by,
					updated_at = now()`,
				code, strings.TrimSpace(mat.MaterialName), string(class), baseUnit, density, req.UserID)
			if err != nil {
				results = append(results, map[string]interface{}{
					constants.ValueSuccess: false,
					constants.ValueError:   constants.ErrDB + ": " + err.Error(),
					"material_code":        code,
				})
				continue
			}
			results = append(results, map[string]interface{}{
				constants.ValueSuccess: true,
				"material_code":        code,
			})
		}

		api.RespondWithPayload(w, api.IsBulkSuccess(results), "", results)
	}
}

// GetMaterialMaster handles GET /master/materials with optional
// material_class and codes (comma-separated) filters.
func GetMaterialMaster(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := utils.ExtractPagination(r)
		if err != nil {
			api.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		var (
			clauses []string
			args    []interface{}
		)
		if class := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("material_class"))); class != "" {
			args = append(args, class)
			clauses = append(clauses, "material_class = $1")
		}
		if codes := strings.TrimSpace(r.URL.Query().Get("codes")); codes != "" {
			list := strings.Split(codes, ",")
			for i := range list {
				list[i] = strings.TrimSpace(list[i])
			}
			args = append(args, pq.Array(list))
			clauses = append(clauses, "material_code = ANY($"+strconv.Itoa(len(args))+")")
		}
		where := ""
		if len(clauses) > 0 {
			where = " WHERE " + strings.Join(clauses, " AND ")
		}

		total, err := utils.CountTotal(db, "SELECT COUNT(*) FROM material_master"+where, args...)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, constants.ErrFailedToQuery+": "+err.Error())
			return
		}
		page.SetPaginationStats(total)

		query := `
			SELECT material_code, material_name, material_class, base_unit, COALESCE(density, 1)
			FROM material_master` + where +
			" ORDER BY material_code LIMIT $" + strconv.Itoa(len(args)+1) +
			" OFFSET $" + strconv.Itoa(len(args)+2)
		args = append(args, page.Limit, page.Offset)

		rows, err := db.QueryContext(r.Context(), query, args...)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, constants.ErrFailedToQuery+": "+err.Error())
			return
		}
		defer rows.Close()

		var materials []map[string]interface{}
		for rows.Next() {
			var code, name, class, baseUnit string
			var density float64
			if err := rows.Scan(&code, &name, &class, &baseUnit, &density); err != nil {
				api.RespondWithError(w, http.StatusInternalServerError, constants.ErrDB+": "+err.Error())
				return
			}
			materials = append(materials, map[string]interface{}{
				"material_code":  code,
				"material_name":  name,
				"material_class": class,
				"base_unit":      baseUnit,
				"density":        density,
			})
		}
		if err := rows.Err(); err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, constants.ErrDB+": "+err.Error())
			return
		}
		api.RespondWithPayload(w, true, "", map[string]interface{}{
			"materials":  materials,
			"pagination": page,
		})
	}
}
