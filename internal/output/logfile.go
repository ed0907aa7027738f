package output

import (
	"os"
	"path/filepath"
)

// GetLogFilePath returns the path to the log file.
// If ST_LOG_FILE is set, uses that path.
// Otherwise, uses ~/.st/logs/st.log
func GetLogFilePath() string {
	if customPath := os.Getenv("ST_LOG_FILE"); customPath != "" {
		return customPath
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if we can't get home dir
		return "st.log"
	}
	return filepath.Join(homeDir, ".st", "logs", "st.log")
}
