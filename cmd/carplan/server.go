package main

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/LdDl/carplan"
	"github.com/gorilla/mux"
)

type routeResponse struct {
	Road          int64           `json:"road"`
	Intersections []int64         `json:"intersections"`
	Distance      float64         `json:"distance"`
	Geometry      json.RawMessage `json:"geometry"`
}

type apiHandler struct {
	net   *carplan.Network
	graph *carplan.Graph
}

func (h *apiHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/route", h.PlanRoute).Methods("GET")
	router.HandleFunc("/network", h.Network).Methods("GET")
}

// PlanRoute plans route between '?from=x,y' and '?to=x,y'
func (h *apiHandler) PlanRoute(w http.ResponseWriter, r *http.Request) {
	from, err := parsePoint(r.URL.Query().Get("from"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	to, err := parsePoint(r.URL.Query().Get("to"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	roadID, ok := h.net.RoadAtPoint(from)
	if !ok {
		http.Error(w, "Start position is not on any road", http.StatusUnprocessableEntity)
		return
	}
	nodes, err := h.graph.PlanRoute(roadID, to)
	if err != nil {
		if carplan.IsNoRoute(err) {
			writeError(w, http.StatusNotFound, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	route := carplan.NewRoute(nodes, to)
	geometry, err := carplan.RouteFeatureCollection(route).MarshalJSON()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	intersections := make([]int64, len(nodes))
	for i, node := range nodes {
		intersections[i] = int64(node.IntersectionID)
	}
	response := routeResponse{
		Road:          int64(roadID),
		Intersections: intersections,
		Distance:      carplan.RouteLength(nodes),
		Geometry:      geometry,
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// Network returns whole network as GeoJSON FeatureCollection
func (h *apiHandler) Network(w http.ResponseWriter, r *http.Request) {
	data, err := carplan.NetworkFeatureCollection(h.net).MarshalJSON()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "application/geo+json")
	w.Write(data)
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

func serve(addr string, net *carplan.Network, graph *carplan.Graph) error {
	router := mux.NewRouter()
	handler := &apiHandler{net: net, graph: graph}
	handler.RegisterRoutes(router)
	log.Printf("Server running on %s", addr)
	return http.ListenAndServe(addr, router)
}
