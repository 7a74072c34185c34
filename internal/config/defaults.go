package config

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.MaxUploadFiles == 0 {
		cfg.Server.MaxUploadFiles = 20
	}
	if cfg.Server.MaxUploadBytes == 0 {
		cfg.Server.MaxUploadBytes = 32 << 20
	}
	if cfg.Export.SpreadsheetName == "" {
		cfg.Export.SpreadsheetName = "Attendance Export"
	}
	if cfg.Export.WorksheetName == "" {
		cfg.Export.WorksheetName = "Sheet1"
	}
	if cfg.Watch.OutputPath == "" {
		cfg.Watch.OutputPath = "attendance_export.xlsx"
	}
}
