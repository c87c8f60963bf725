package repository

import "os"

// getenvDefault resolves the PROJECTS_TABLE, WORKFLOWS_TABLE and
// APPROVALS_TABLE overrides the DynamoDB repositories accept.
func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
