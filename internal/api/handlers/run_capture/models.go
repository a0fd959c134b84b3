package run_capture

// JobRunResponse результат успешного запуска джоба
type JobRunResponse struct {
	Success      bool     `json:"success"`
	Message      string   `json:"message"`
	Processed    int      `json:"processed"`
	Errors       int      `json:"errors"`
	ErrorDetails []string `json:"errorDetails,omitempty"`
	Duration     string   `json:"duration"`
}

// JobErrorResponse результат фатально завершившегося запуска
type JobErrorResponse struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	Processed int    `json:"processed"`
	Errors    int    `json:"errors"`
	Duration  string `json:"duration"`
}
