package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kntista_backend/internals/features/activity/cleanup"
	eventTypeRoute "kntista_backend/internals/features/activity/event_types/route"
	eventTypeService "kntista_backend/internals/features/activity/event_types/service"
	eventRoute "kntista_backend/internals/features/activity/events/route"
	eventService "kntista_backend/internals/features/activity/events/service"
	locationRoute "kntista_backend/internals/features/activity/locations/route"
	locationService "kntista_backend/internals/features/activity/locations/service"
	moduleRoute "kntista_backend/internals/features/activity/modules/route"
	moduleService "kntista_backend/internals/features/activity/modules/service"
	personRoute "kntista_backend/internals/features/activity/responsible_persons/route"
	personService "kntista_backend/internals/features/activity/responsible_persons/service"
	"kntista_backend/internals/helpers/feed"
)

type ActivityServices struct {
	Modules            *moduleService.ModuleService
	Locations          *locationService.LocationService
	EventTypes         *eventTypeService.EventTypeService
	ResponsiblePersons *personService.ResponsiblePersonService
	Events             *eventService.EventService
}

func NewActivityServices(db *gorm.DB, publisher feed.Publisher) *ActivityServices {
	s := &ActivityServices{
		Modules:            moduleService.New(db),
		Locations:          locationService.New(db),
		EventTypes:         eventTypeService.New(db),
		ResponsiblePersons: personService.New(db),
	}
	s.Events = eventService.New(db, s.Modules, s.ResponsiblePersons, s.EventTypes, s.Locations, publisher)
	return s
}

// CleanupTargets lists the reference services swept by the cleanup job.
func (s *ActivityServices) CleanupTargets() []cleanup.Target {
	return []cleanup.Target{s.Modules, s.Locations, s.EventTypes, s.ResponsiblePersons}
}

func ActivityRoutes(api fiber.Router, s *ActivityServices) {
	moduleRoute.ModuleRoutes(api, s.Modules)
	locationRoute.LocationRoutes(api, s.Locations)
	eventTypeRoute.EventTypeRoutes(api, s.EventTypes)
	personRoute.ResponsiblePersonRoutes(api, s.ResponsiblePersons)
	eventRoute.EventRoutes(api, s.Events)
}
