package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/frotaweb/fleet-app/models"
	"github.com/frotaweb/fleet-app/utils"
)

// partialUnique describes a uniqueness rule scoped to pending requests.
// The index, not application code, is what guarantees "at most one
// pending request per natural key" under concurrent submissions.
type partialUnique struct {
	name   string
	table  string
	column string
}

var pendingUniques = []partialUnique{
	{name: "uniq_cpf_pending_driver", table: "driver_requests", column: "cpf"},
	{name: "uniq_plate_pending_vehicle", table: "vehicle_requests", column: "plate"},
}

// EnsureConstraints installs the conditional unique indexes after
// AutoMigrate. Safe to run on every startup.
func EnsureConstraints(db *gorm.DB) error {
	dialect := db.Dialector.Name()

	for _, pu := range pendingUniques {
		var stmt string
		switch dialect {
		case "mysql":
			// MySQL has no partial indexes; a functional unique index over
			// a CASE expression works because NULLs never collide.
			if db.Migrator().HasIndex(modelForTable(pu.table), pu.name) {
				continue
			}
			stmt = fmt.Sprintf(
				"CREATE UNIQUE INDEX %s ON %s ((CASE WHEN status = '%s' THEN %s END))",
				pu.name, pu.table, models.RequestStatusPending, pu.column,
			)
		default:
			// sqlite and postgres support partial indexes natively
			stmt = fmt.Sprintf(
				"CREATE UNIQUE INDEX IF NOT EXISTS %s ON %s (%s) WHERE status = '%s'",
				pu.name, pu.table, pu.column, models.RequestStatusPending,
			)
		}

		if err := db.Exec(stmt).Error; err != nil {
			utils.ErrorLogger.Printf("Error creating index %s: %v", pu.name, err)
			return err
		}
		utils.InfoLogger.Printf("Ensured conditional unique index %s on %s(%s)", pu.name, pu.table, pu.column)
	}

	return nil
}

func modelForTable(table string) interface{} {
	if table == "driver_requests" {
		return &models.DriverRequest{}
	}
	return &models.VehicleRequest{}
}
