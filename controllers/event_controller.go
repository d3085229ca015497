package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"campuslink_server/models"
	"campuslink_server/services"

	"github.com/gorilla/mux"
)

// EventController handles campus event listing, creation and attendance
type EventController struct {
	Events *services.EventService
	Users  *services.UserService
}

// NewEventController creates a new EventController instance
func NewEventController(events *services.EventService, users *services.UserService) *EventController {
	return &EventController{Events: events, Users: users}
}

// HandleGetEvents lists the events of the authenticated user's college
func (ec *EventController) HandleGetEvents(w http.ResponseWriter, r *http.Request) {
	identity, _ := IdentityFromRequest(r)

	user, err := ec.Users.GetUserByID(r.Context(), identity.UserID)
	if err != nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	events, err := ec.Events.GetEventsForCollege(r.Context(), user.College)
	if err != nil {
		log.Printf("failed to fetch events for college %q: %v", user.College, err)
		http.Error(w, "Failed to get events", http.StatusInternalServerError)
		return
	}
	if events == nil {
		events = []models.EventWithCreator{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(events)
}

// HandleCreateEvent creates an event in the creator's college
func (ec *EventController) HandleCreateEvent(w http.ResponseWriter, r *http.Request) {
	identity, _ := IdentityFromRequest(r)

	var request struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Location    string `json:"location"`
		Datetime    string `json:"datetime"`
		Category    string `json:"category"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if request.Title == "" || request.Description == "" || request.Location == "" || request.Datetime == "" || request.Category == "" {
		http.Error(w, "title, description, location, datetime and category are required", http.StatusBadRequest)
		return
	}

	user, err := ec.Users.GetUserByID(r.Context(), identity.UserID)
	if err != nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	event := models.Event{
		Title:       request.Title,
		Description: request.Description,
		Location:    request.Location,
		Datetime:    request.Datetime,
		CreatedBy:   identity.UserID,
		College:     user.College,
		Category:    request.Category,
	}

	created, err := ec.Events.CreateEvent(r.Context(), event)
	if err != nil {
		log.Printf("failed to create event: %v", err)
		http.Error(w, "Failed to create event", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(created)
}

// HandleJoinEvent adds the user to the event's attendees; joining twice is a no-op
func (ec *EventController) HandleJoinEvent(w http.ResponseWriter, r *http.Request) {
	ec.handleAttendance(w, r, ec.Events.JoinEvent, "Joined event successfully")
}

// HandleLeaveEvent removes the user from the event's attendees; leaving a
// non-attended event is a no-op
func (ec *EventController) HandleLeaveEvent(w http.ResponseWriter, r *http.Request) {
	ec.handleAttendance(w, r, ec.Events.LeaveEvent, "Left event successfully")
}

func (ec *EventController) handleAttendance(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, eventID, userID int) error, successMessage string) {
	identity, _ := IdentityFromRequest(r)

	eventID, err := strconv.Atoi(mux.Vars(r)["eventId"])
	if err != nil {
		http.Error(w, "Invalid event id", http.StatusBadRequest)
		return
	}

	if err := op(r.Context(), eventID, identity.UserID); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			http.Error(w, "Event not found", http.StatusNotFound)
			return
		}
		log.Printf("failed to update attendance for event %d: %v", eventID, err)
		http.Error(w, "Failed to update event attendance", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": successMessage})
}
