package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/prudhvinik1/boxfleet/internal/apperr"
	"github.com/prudhvinik1/boxfleet/internal/models"
)

type locationRequest struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

func (l *locationRequest) toLocation() (*models.Location, error) {
	if l == nil {
		return nil, nil
	}
	if l.Lat == nil || l.Lng == nil {
		return nil, apperr.Validation("location", "lat and lng are both required")
	}
	return &models.Location{Lat: *l.Lat, Lng: *l.Lng}, nil
}

type updateBoxRequest struct {
	Name        *string                   `json:"name"`
	Description *string                   `json:"description"`
	Exposure    *models.Exposure          `json:"exposure"`
	Model       *string                   `json:"model"`
	Status      *models.BoxStatus         `json:"status"`
	UseAuth     *bool                     `json:"useAuth"`
	Public      *bool                     `json:"public"`
	GroupTag    *string                   `json:"grouptag"`
	Weblink     *string                   `json:"weblink"`
	Location    *locationRequest          `json:"location"`
	Sensors     []models.SensorDescriptor `json:"sensors"`
}

func (req updateBoxRequest) patch() (models.BoxPatch, error) {
	loc, err := req.Location.toLocation()
	if err != nil {
		return models.BoxPatch{}, err
	}
	return models.BoxPatch{
		Name:        req.Name,
		Description: req.Description,
		Exposure:    req.Exposure,
		Model:       req.Model,
		Status:      req.Status,
		UseAuth:     req.UseAuth,
		Public:      req.Public,
		GroupTag:    req.GroupTag,
		Weblink:     req.Weblink,
		Location:    loc,
	}, nil
}

type newSensorRequest struct {
	ID         string  `json:"_id"`
	Title      string  `json:"title"`
	Unit       string  `json:"unit"`
	SensorType string  `json:"sensorType"`
	Icon       *string `json:"icon"`
}

type createBoxRequest struct {
	Name        string             `json:"name"`
	Description *string            `json:"description"`
	Exposure    models.Exposure    `json:"exposure"`
	Model       *string            `json:"model"`
	UseAuth     bool               `json:"useAuth"`
	Public      bool               `json:"public"`
	GroupTag    *string            `json:"grouptag"`
	Weblink     *string            `json:"weblink"`
	Location    *locationRequest   `json:"location"`
	Sensors     []newSensorRequest `json:"sensors"`
}

func (req createBoxRequest) newBox() (*models.NewBox, error) {
	loc, err := req.Location.toLocation()
	if err != nil {
		return nil, err
	}

	box := &models.NewBox{
		Name:        req.Name,
		Description: req.Description,
		Exposure:    req.Exposure,
		Model:       req.Model,
		UseAuth:     req.UseAuth,
		Public:      req.Public,
		GroupTag:    req.GroupTag,
		Weblink:     req.Weblink,
		Location:    loc,
	}
	for _, s := range req.Sensors {
		box.Sensors = append(box.Sensors, models.NewSensor{
			ID:         s.ID,
			Title:      s.Title,
			Unit:       s.Unit,
			SensorType: s.SensorType,
			Icon:       s.Icon,
		})
	}
	return box, nil
}

func (h *handler) createBox(w http.ResponseWriter, r *http.Request) {
	var req createBoxRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	box, err := req.newBox()
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	box.OwnerID = userID(r)

	id, err := h.boxes.CreateBox(r.Context(), box)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, envelope{Code: "Created", Data: map[string]string{"_id": id}})
}

func (h *handler) getBox(w http.ResponseWriter, r *http.Request) {
	box, err := h.boxes.GetBox(r.Context(), chi.URLParam(r, "boxId"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, box)
}

func (h *handler) updateBox(w http.ResponseWriter, r *http.Request) {
	var req updateBoxRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	patch, err := req.patch()
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	box, err := h.boxes.UpdateBox(r.Context(), chi.URLParam(r, "boxId"), patch, req.Sensors)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{Code: "Ok", Data: box})
}

func (h *handler) deleteBox(w http.ResponseWriter, r *http.Request) {
	name, err := h.boxes.DeleteBox(r.Context(), chi.URLParam(r, "boxId"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{Code: "Ok", Message: "box deleted", Data: map[string]string{"name": name}})
}

func (h *handler) listMyBoxes(w http.ResponseWriter, r *http.Request) {
	boxes, err := h.boxes.ListBoxes(r.Context(), userID(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if boxes == nil {
		boxes = []*models.Box{}
	}

	writeJSON(w, http.StatusOK, envelope{Code: "Ok", Data: map[string]any{"boxes": boxes}})
}
