package http

import (
	"time"

	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/waitlist"
	"dispatch/internal/core/domain/model/worker"
)

// CreateJobRequest is the body of POST /jobs.
type CreateJobRequest struct {
	Name    string   `json:"name"    validate:"required,max=200"`
	Phone   string   `json:"phone"   validate:"required"`
	Address string   `json:"address" validate:"required,max=500"`
	Lat     *float64 `json:"lat"     validate:"omitnil,gte=-90,lte=90"`
	Lng     *float64 `json:"lng"     validate:"omitnil,gte=-180,lte=180"`
	Minutes int      `json:"minutes" validate:"required,gt=0,lte=1440"`
	Notes   string   `json:"notes"   validate:"max=2000"`
}

// PresenceRequest is the body of POST /cleaner/online.
type PresenceRequest struct {
	Name   string   `json:"name"   validate:"required,max=200"`
	Phone  string   `json:"phone"  validate:"required"`
	Lat    *float64 `json:"lat"    validate:"omitnil,gte=-90,lte=90"`
	Lng    *float64 `json:"lng"    validate:"omitnil,gte=-180,lte=180"`
	Online bool     `json:"online"`
}

// WaitlistRequest is the body of both waitlist endpoints.
type WaitlistRequest struct {
	Name    string `json:"name"    validate:"required,max=200"`
	Email   string `json:"email"   validate:"required,max=254,email"`
	Phone   string `json:"phone"`
	Zip     string `json:"zip"     validate:"max=16"`
	Message string `json:"message" validate:"max=2000"`
}

type JobResponse struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	Phone             string     `json:"phone"`
	Address           string     `json:"address"`
	Lat               *float64   `json:"lat"`
	Lng               *float64   `json:"lng"`
	Minutes           int        `json:"minutes"`
	PriceCents        int        `json:"price_cents"`
	Notes             string     `json:"notes"`
	Status            string     `json:"status"`
	AssignedCleanerID *string    `json:"assigned_cleaner_id"`
	CreatedAt         time.Time  `json:"created_at"`
	AcceptedAt        *time.Time `json:"accepted_at"`
}

type CleanerResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Phone      string    `json:"phone"`
	Online     bool      `json:"online"`
	Lat        *float64  `json:"lat"`
	Lng        *float64  `json:"lng"`
	LastSeenAt time.Time `json:"last_seen_at"`
}

type WaitlistEntryResponse struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone"`
	Zip       string    `json:"zip,omitempty"`
	Message   string    `json:"message,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type HealthResponse struct {
	OK      bool      `json:"ok"`
	Time    time.Time `json:"time"`
	Service string    `json:"service"`
	Version string    `json:"version"`
}

type JobEnvelope struct {
	OK  bool         `json:"ok"`
	Job *JobResponse `json:"job"`
}

type CleanerEnvelope struct {
	OK      bool             `json:"ok"`
	Cleaner *CleanerResponse `json:"cleaner"`
}

type CleanersEnvelope struct {
	OK       bool              `json:"ok"`
	Cleaners []CleanerResponse `json:"cleaners"`
}

type WaitlistEnvelope struct {
	OK    bool                   `json:"ok"`
	Entry *WaitlistEntryResponse `json:"entry"`
}

// AssignNearestResponse carries one of three shapes: a message alone for no
// match, a message and the job when it was already taken, or the job with the
// assigned cleaner and distance.
type AssignNearestResponse struct {
	OK              bool             `json:"ok"`
	Message         string           `json:"message,omitempty"`
	Job             *JobResponse     `json:"job,omitempty"`
	AssignedCleaner *CleanerResponse `json:"assigned_cleaner,omitempty"`
	DistanceKm      *float64         `json:"distance_km,omitempty"`
}

const (
	messageNoCleanersOnline = "no_cleaners_online"
	messageAlreadyAssigned  = "already_assigned"
)

func toJobResponse(j *job.Job) *JobResponse {
	res := &JobResponse{
		ID:         j.ID().String(),
		Name:       j.Name(),
		Phone:      j.Phone().String(),
		Address:    j.Address(),
		Minutes:    j.Minutes(),
		PriceCents: j.PriceCents(),
		Notes:      j.Notes(),
		Status:     j.Status().String(),
		CreatedAt:  j.CreatedAt(),
		AcceptedAt: j.AcceptedAt(),
	}
	res.Lat, res.Lng = coordinates(j.Location())
	if id := j.Worker(); id != nil {
		s := id.String()
		res.AssignedCleanerID = &s
	}
	return res
}

func toCleanerResponse(w *worker.Worker) *CleanerResponse {
	res := &CleanerResponse{
		ID:         w.ID().String(),
		Name:       w.Name(),
		Phone:      w.Phone().String(),
		Online:     w.Online(),
		LastSeenAt: w.LastSeenAt(),
	}
	res.Lat, res.Lng = coordinates(w.Location())
	return res
}

func toOnlineCleanerResponse(w queries.ListOnlineWorkersQueryResponse) CleanerResponse {
	res := CleanerResponse{
		ID:         w.ID.String(),
		Name:       w.Name,
		Phone:      w.Phone,
		Online:     true,
		LastSeenAt: w.LastSeenAt,
	}
	res.Lat, res.Lng = coordinates(w.Location)
	return res
}

func toWaitlistEntryResponse(e *waitlist.Entry) *WaitlistEntryResponse {
	res := &WaitlistEntryResponse{
		ID:        e.ID().String(),
		Kind:      string(e.Kind()),
		Name:      e.Name(),
		Email:     e.Email(),
		Zip:       e.Zip(),
		Message:   e.Message(),
		CreatedAt: e.CreatedAt(),
	}
	if p := e.Phone(); p != nil {
		s := p.String()
		res.Phone = &s
	}
	return res
}

func coordinates(p *kernel.GeoPoint) (*float64, *float64) {
	if p == nil {
		return nil, nil
	}
	lat, lng := p.Lat(), p.Lng()
	return &lat, &lng
}
