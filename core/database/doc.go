// Package database opens the relational store behind the save journal.
//
// It wraps GORM and selects the MySQL or SQLite dialector from configuration. SQLite is
// meant for local runs and tests; production deployments use MySQL.
//
// # Schema Inspection
//
// GetTableColumns and MissingColumns read the live table layout, which the journal uses
// at startup to report tables that drifted from its models.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Warn("Journal disabled", zap.Error(err))
//	}
//
//	missing, err := database.MissingColumns(db, "save_reports", "id", "section")
package database
