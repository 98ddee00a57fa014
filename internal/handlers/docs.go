package handlers

import (
	"encoding/json"
	"net/http"
)

// OpenAPISpec returns the OpenAPI 3.0 specification for the Data Weaver Dashboard API
func OpenAPISpec(w http.ResponseWriter, r *http.Request) {
	spec := map[string]interface{}{
		"openapi": "3.0.0",
		"info": map[string]interface{}{
			"title":       "Data Weaver Dashboard API",
			"description": "Weather-order correlation engine with order history aggregation, demand forecasting, and business insights",
			"version":     "1.0.0",
			"contact": map[string]string{
				"name": "Data Weaver Team",
			},
		},
		"servers": []map[string]string{
			{"url": "http://localhost:8080", "description": "Local development server"},
		},
		"paths": map[string]interface{}{
			"/api/orders": map[string]interface{}{
				"get": map[string]interface{}{
					"summary":     "Get order history",
					"description": "Retrieve daily order records with filtering and pagination",
					"parameters": []map[string]interface{}{
						{
							"name":        "start_date",
							"in":          "query",
							"description": "Filter by start date (YYYY-MM-DD)",
							"required":    false,
							"schema":      map[string]string{"type": "string", "format": "date"},
						},
						{
							"name":        "end_date",
							"in":          "query",
							"description": "Filter by end date (YYYY-MM-DD)",
							"required":    false,
							"schema":      map[string]string{"type": "string", "format": "date"},
						},
						{
							"name":        "page",
							"in":          "query",
							"description": "Page number (default: 1)",
							"required":    false,
							"schema":      map[string]interface{}{"type": "integer", "default": 1},
						},
						{
							"name":        "limit",
							"in":          "query",
							"description": "Records per page (default: 100, max: 1000)",
							"required":    false,
							"schema":      map[string]interface{}{"type": "integer", "default": 100},
						},
					},
					"responses": map[string]interface{}{
						"200": map[string]interface{}{
							"description": "Paginated order records",
						},
						"400": map[string]interface{}{
							"description": "Invalid filter parameters",
						},
					},
				},
			},
			"/api/orders/summary": map[string]interface{}{
				"get": map[string]interface{}{
					"summary":     "Get order summary",
					"description": "Aggregate metrics over the stored history: total orders, daily average, weekly trends, peak days",
					"responses": map[string]interface{}{
						"200": map[string]interface{}{
							"description": "Order summary",
						},
					},
				},
			},
			"/api/forecast": map[string]interface{}{
				"get": map[string]interface{}{
					"summary":     "Get demand forecast",
					"description": "Evaluate current weather against the order history baseline: predicted orders, confidence, insights, recommendations, and headline narrative",
					"parameters": []map[string]interface{}{
						{
							"name":        "city",
							"in":          "query",
							"description": "City for current weather conditions (default: configured city)",
							"required":    false,
							"schema":      map[string]string{"type": "string"},
						},
					},
					"responses": map[string]interface{}{
						"200": map[string]interface{}{
							"description": "Demand forecast with insights and recommendations",
						},
					},
				},
			},
			"/health": map[string]interface{}{
				"get": map[string]interface{}{
					"summary": "Health check",
					"responses": map[string]interface{}{
						"200": map[string]interface{}{
							"description": "Service is healthy",
						},
					},
				},
			},
		},
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(spec)
}
