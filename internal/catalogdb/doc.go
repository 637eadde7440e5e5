// Package catalogdb mirrors a finished catalog into a SQLite database.
//
// The datasets table is rebuilt from scratch on every run inside one
// transaction, the same lifecycle as file_list.json, so readers never see a
// half-written catalog. The builds table keeps one row per run as history.
package catalogdb
