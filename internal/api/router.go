package api

import (
	"net/http"

	"github.com/avandijk/medstock/internal/store"
	"github.com/avandijk/medstock/internal/supply"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(st *store.Store, svc *supply.Service) http.Handler {
	mux := http.NewServeMux()

	itemsHandler := &ItemsHandler{Store: st}
	cabinetsHandler := &CabinetsHandler{Store: st}
	postsHandler := &PostsHandler{Store: st}
	locationsHandler := &LocationsHandler{Store: st}
	contactsHandler := &ContactsHandler{Store: st}
	categoriesHandler := &CategoriesHandler{Store: st}
	supplyHandler := &SupplyHandler{Service: svc}
	objectsHandler := &ObjectsHandler{Store: st}

	// Catalog items.
	mux.HandleFunc("GET /api/medical-items", itemsHandler.List)
	mux.HandleFunc("POST /api/medical-items", itemsHandler.Create)
	mux.HandleFunc("GET /api/medical-items/{id}", itemsHandler.Get)
	mux.HandleFunc("PATCH /api/medical-items/{id}", itemsHandler.Update)
	mux.HandleFunc("DELETE /api/medical-items/{id}", itemsHandler.Delete)
	mux.HandleFunc("GET /api/medical-items/{id}/supply-requests", itemsHandler.SupplyRequests)

	// Cabinets, drawers, placements.
	mux.HandleFunc("GET /api/cabinets", cabinetsHandler.List)
	mux.HandleFunc("POST /api/cabinets", cabinetsHandler.Create)
	mux.HandleFunc("GET /api/cabinets/summary", cabinetsHandler.Summary)
	mux.HandleFunc("GET /api/cabinets/{id}", cabinetsHandler.Get)
	mux.HandleFunc("PATCH /api/cabinets/{id}", cabinetsHandler.Update)
	mux.HandleFunc("DELETE /api/cabinets/{id}", cabinetsHandler.Delete)
	mux.HandleFunc("GET /api/cabinets/{id}/drawers", cabinetsHandler.ListDrawers)
	mux.HandleFunc("POST /api/cabinets/{id}/drawers", cabinetsHandler.CreateDrawer)
	mux.HandleFunc("DELETE /api/drawers/{id}", cabinetsHandler.DeleteDrawer)
	mux.HandleFunc("GET /api/cabinet-locations", cabinetsHandler.ListLocations)
	mux.HandleFunc("POST /api/cabinet-locations", cabinetsHandler.CreateLocation)
	mux.HandleFunc("DELETE /api/cabinet-locations/{id}", cabinetsHandler.DeleteLocation)

	// Ambulance posts.
	mux.HandleFunc("GET /api/ambulance-posts", postsHandler.List)
	mux.HandleFunc("POST /api/ambulance-posts", postsHandler.Create)
	mux.HandleFunc("GET /api/ambulance-posts/{id}", postsHandler.Get)
	mux.HandleFunc("PATCH /api/ambulance-posts/{id}", postsHandler.Update)
	mux.HandleFunc("DELETE /api/ambulance-posts/{id}", postsHandler.Delete)
	mux.HandleFunc("GET /api/ambulance-posts/{id}/cabinets", postsHandler.OrderedCabinets)
	mux.HandleFunc("PUT /api/ambulance-posts/{id}/cabinet-order", postsHandler.SetCabinetOrder)

	// Item locations and stock status.
	mux.HandleFunc("GET /api/item-locations", locationsHandler.List)
	mux.HandleFunc("POST /api/item-locations", locationsHandler.Create)
	mux.HandleFunc("GET /api/item-locations/{itemId}", locationsHandler.ListForItem)
	mux.HandleFunc("PATCH /api/item-locations/{id}/status", locationsHandler.SetStatus)
	mux.HandleFunc("DELETE /api/item-locations/{id}", locationsHandler.Delete)
	mux.HandleFunc("POST /api/item-locations/{id}/reset", supplyHandler.Reset)
	mux.HandleFunc("GET /api/item-locations/{id}/request-status", supplyHandler.RequestStatus)

	// Post contacts.
	mux.HandleFunc("GET /api/post-contacts", contactsHandler.List)
	mux.HandleFunc("POST /api/post-contacts", contactsHandler.Create)
	mux.HandleFunc("GET /api/post-contacts/{id}", contactsHandler.Get)
	mux.HandleFunc("PATCH /api/post-contacts/{id}", contactsHandler.Update)
	mux.HandleFunc("DELETE /api/post-contacts/{id}", contactsHandler.Delete)

	// Categories.
	mux.HandleFunc("GET /api/categories", categoriesHandler.List)
	mux.HandleFunc("POST /api/categories", categoriesHandler.Create)
	mux.HandleFunc("DELETE /api/categories/{id}", categoriesHandler.Delete)

	// Notifications.
	mux.HandleFunc("POST /api/supply-request/{locationId}", supplyHandler.SendRequest)
	mux.HandleFunc("POST /api/send-warning-email/{itemId}", supplyHandler.SendWarning)
	mux.HandleFunc("POST /api/items/{itemId}/mark-out-of-stock", supplyHandler.MarkOutOfStock)
	mux.HandleFunc("POST /api/items/{itemId}/mark-low-stock", supplyHandler.MarkLowStock)

	// Item photos.
	mux.HandleFunc("POST /api/objects/upload", objectsHandler.NewUpload)
	mux.HandleFunc("PUT /objects/upload/{id}", objectsHandler.Put)
	mux.HandleFunc("GET /objects/{id}", objectsHandler.Get)

	return mux
}
