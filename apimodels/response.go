package apimodels

import "github.com/sozercan/npk-predictor/internal/form"

type PredictionResponse struct {
	// Raw model output
	Prediction float64 `json:"prediction"`

	// Prediction rounded to two decimals, as displayed
	Formatted string `json:"formatted"`

	// Message shown in the success banner
	Message string `json:"message"`

	// Inputs after clamping, exactly as sent to the model
	Inputs form.Request `json:"inputs"`

	// Metadata about the prediction
	Metadata PredictionMetadata `json:"metadata"`
}

type PredictionMetadata struct {
	// Identifier of this prediction, also present in the logs
	ID string `json:"id"`

	// Time taken by the inference call
	Duration string `json:"duration"`

	// Model used for the prediction
	Model string `json:"model"`
}

type FieldsResponse struct {
	Fields []form.Field `json:"fields"`
}

type HealthResponse struct {
	Status string `json:"status"`
	Model  string `json:"model"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
