package activity

import (
	_ "embed"
	"log"

	json "github.com/goccy/go-json"
	"gorm.io/gorm"

	eventTypeModel "kntista_backend/internals/features/activity/event_types/model"
	eventModel "kntista_backend/internals/features/activity/events/model"
	locationModel "kntista_backend/internals/features/activity/locations/model"
	moduleModel "kntista_backend/internals/features/activity/modules/model"
	personModel "kntista_backend/internals/features/activity/responsible_persons/model"
)

//go:embed data_activity.json
var seedData []byte

type locationSeed struct {
	Name      string  `json:"name"`
	IsOffline bool    `json:"is_offline"`
	Address   *string `json:"address"`
}

type activitySeed struct {
	Modules            []string       `json:"modules"`
	EventTypes         []string       `json:"event_types"`
	ResponsiblePersons []string       `json:"responsible_persons"`
	Locations          []locationSeed `json:"locations"`
}

// HasData reports whether any reference table already has rows.
func HasData(db *gorm.DB) (bool, error) {
	for _, m := range []any{
		&moduleModel.ModuleModel{},
		&eventTypeModel.EventTypeModel{},
		&personModel.ResponsiblePersonModel{},
		&locationModel.LocationModel{},
	} {
		var n int64
		if err := db.Model(m).Count(&n).Error; err != nil {
			return false, err
		}
		if n > 0 {
			return true, nil
		}
	}
	return false, nil
}

// SeedActivity wipes events and reference rows and inserts the embedded data
// in one transaction. Modules are numbered in file order.
func SeedActivity(db *gorm.DB) error {
	var data activitySeed
	if err := json.Unmarshal(seedData, &data); err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for _, m := range []any{
			&eventModel.EventModel{},
			&moduleModel.ModuleModel{},
			&eventTypeModel.EventTypeModel{},
			&personModel.ResponsiblePersonModel{},
			&locationModel.LocationModel{},
		} {
			if err := tx.Where("1 = 1").Delete(m).Error; err != nil {
				return err
			}
		}

		modules := make([]moduleModel.ModuleModel, 0, len(data.Modules))
		for i, name := range data.Modules {
			modules = append(modules, moduleModel.ModuleModel{ModuleName: name, ModuleNumber: i + 1})
		}
		types := make([]eventTypeModel.EventTypeModel, 0, len(data.EventTypes))
		for _, name := range data.EventTypes {
			types = append(types, eventTypeModel.EventTypeModel{EventTypeName: name})
		}
		persons := make([]personModel.ResponsiblePersonModel, 0, len(data.ResponsiblePersons))
		for _, name := range data.ResponsiblePersons {
			persons = append(persons, personModel.ResponsiblePersonModel{ResponsiblePersonName: name})
		}
		locations := make([]locationModel.LocationModel, 0, len(data.Locations))
		for _, l := range data.Locations {
			locations = append(locations, locationModel.LocationModel{
				LocationName:      l.Name,
				LocationIsOffline: l.IsOffline,
				LocationAddress:   l.Address,
			})
		}

		for _, batch := range []any{&modules, &types, &persons, &locations} {
			if err := tx.Create(batch).Error; err != nil {
				return err
			}
		}

		log.Printf("[SEED] activity: %d modules, %d event types, %d responsible persons, %d locations",
			len(modules), len(types), len(persons), len(locations))
		return nil
	})
}
