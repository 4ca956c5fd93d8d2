package postgres

// Migrations is a list of all gorm migrations for a profile table.
var Migrations = []interface{}{
	&Entry{},
}
