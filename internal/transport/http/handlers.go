package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/finebook/finebook/internal/auth"
	"github.com/finebook/finebook/internal/domain"
	"github.com/finebook/finebook/internal/infra"
	uc "github.com/finebook/finebook/internal/usecase"
)

type Handlers struct {
	UC  *uc.Usecase
	Log infra.Logger
}

func NewHandlers(uc *uc.Usecase, log infra.Logger) *Handlers {
	return &Handlers{UC: uc, Log: log}
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func errorResp(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, map[string]interface{}{"error": map[string]string{"code": code, "message": msg}})
}

func writeResult(w http.ResponseWriter, v interface{}) {
	if v == nil {
		v = struct{}{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"result": v})
}

var statusByKind = map[uc.Kind]int{
	uc.KindUnauthenticated:    http.StatusUnauthorized,
	uc.KindPermissionDenied:   http.StatusForbidden,
	uc.KindNotFound:           http.StatusNotFound,
	uc.KindAlreadyExists:      http.StatusConflict,
	uc.KindFailedPrecondition: http.StatusPreconditionFailed,
	uc.KindInvalidArgument:    http.StatusBadRequest,
}

func (h *Handlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	kind := uc.KindOf(err)
	status, ok := statusByKind[kind]
	if !ok {
		h.Log.Errorf("%s: %v", r.URL.Path, err)
		errorResp(w, http.StatusInternalServerError, string(uc.KindInternal), "internal error")
		return
	}
	errorResp(w, status, string(kind), err.Error())
}

// decode reads the parameter object. An empty body decodes to the zero value.
func decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		errorResp(w, http.StatusBadRequest, string(uc.KindInvalidArgument), "invalid json: "+err.Error())
		return false
	}
	return true
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}

func (h *Handlers) TeamNew(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		TeamID       domain.TeamID     `json:"teamId"`
		TeamName     string            `json:"teamName"`
		PaypalMeLink *string           `json:"paypalMeLink"`
		PersonID     domain.PersonID   `json:"personId"`
		PersonName   domain.PersonName `json:"personName"`
	}
	if !decode(w, r, &payload) {
		return
	}
	team, err := h.UC.NewTeam(r.Context(), auth.FromContext(r.Context()), uc.NewTeamParams{
		TeamID:       payload.TeamID,
		TeamName:     payload.TeamName,
		PaypalMeLink: payload.PaypalMeLink,
		PersonID:     payload.PersonID,
		PersonName:   payload.PersonName,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeResult(w, team)
}

func (h *Handlers) PaypalMeEdit(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		TeamID       domain.TeamID `json:"teamId"`
		PaypalMeLink *string       `json:"paypalMeLink"`
	}
	if !decode(w, r, &payload) {
		return
	}
	team, err := h.UC.EditPaypalMe(r.Context(), auth.FromContext(r.Context()), payload.TeamID, payload.PaypalMeLink)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeResult(w, team)
}

type personPayload struct {
	TeamID domain.TeamID `json:"teamId"`
	Person domain.Person `json:"person"`
}

func (h *Handlers) PersonAdd(w http.ResponseWriter, r *http.Request) {
	var payload personPayload
	if !decode(w, r, &payload) {
		return
	}
	person, err := h.UC.AddPerson(r.Context(), auth.FromContext(r.Context()), payload.TeamID, payload.Person)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeResult(w, person)
}

func (h *Handlers) PersonUpdate(w http.ResponseWriter, r *http.Request) {
	var payload personPayload
	if !decode(w, r, &payload) {
		return
	}
	person, err := h.UC.UpdatePerson(r.Context(), auth.FromContext(r.Context()), payload.TeamID, payload.Person)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeResult(w, person)
}

func (h *Handlers) PersonDelete(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		TeamID   domain.TeamID   `json:"teamId"`
		PersonID domain.PersonID `json:"personId"`
	}
	if !decode(w, r, &payload) {
		return
	}
	if err := h.UC.DeletePerson(r.Context(), auth.FromContext(r.Context()), payload.TeamID, payload.PersonID); err != nil {
		h.fail(w, r, err)
		return
	}
	writeResult(w, nil)
}

type fineTemplatePayload struct {
	TeamID       domain.TeamID       `json:"teamId"`
	FineTemplate domain.FineTemplate `json:"fineTemplate"`
}

func (h *Handlers) FineTemplateAdd(w http.ResponseWriter, r *http.Request) {
	var payload fineTemplatePayload
	if !decode(w, r, &payload) {
		return
	}
	tmpl, err := h.UC.AddFineTemplate(r.Context(), auth.FromContext(r.Context()), payload.TeamID, payload.FineTemplate)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeResult(w, tmpl)
}

func (h *Handlers) FineTemplateUpdate(w http.ResponseWriter, r *http.Request) {
	var payload fineTemplatePayload
	if !decode(w, r, &payload) {
		return
	}
	tmpl, err := h.UC.UpdateFineTemplate(r.Context(), auth.FromContext(r.Context()), payload.TeamID, payload.FineTemplate)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeResult(w, tmpl)
}

func (h *Handlers) FineTemplateDelete(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		TeamID         domain.TeamID         `json:"teamId"`
		FineTemplateID domain.FineTemplateID `json:"fineTemplateId"`
	}
	if !decode(w, r, &payload) {
		return
	}
	if err := h.UC.DeleteFineTemplate(r.Context(), auth.FromContext(r.Context()), payload.TeamID, payload.FineTemplateID); err != nil {
		h.fail(w, r, err)
		return
	}
	writeResult(w, nil)
}

type finePayload struct {
	TeamID domain.TeamID `json:"teamId"`
	Fine   domain.Fine   `json:"fine"`
}

func (h *Handlers) FineAdd(w http.ResponseWriter, r *http.Request) {
	var payload finePayload
	if !decode(w, r, &payload) {
		return
	}
	fine, err := h.UC.AddFine(r.Context(), auth.FromContext(r.Context()), payload.TeamID, payload.Fine)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeResult(w, fine)
}

func (h *Handlers) FineUpdate(w http.ResponseWriter, r *http.Request) {
	var payload finePayload
	if !decode(w, r, &payload) {
		return
	}
	fine, err := h.UC.UpdateFine(r.Context(), auth.FromContext(r.Context()), payload.TeamID, payload.Fine)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeResult(w, fine)
}

func (h *Handlers) FineDelete(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		TeamID domain.TeamID `json:"teamId"`
		FineID domain.FineID `json:"fineId"`
	}
	if !decode(w, r, &payload) {
		return
	}
	if err := h.UC.DeleteFine(r.Context(), auth.FromContext(r.Context()), payload.TeamID, payload.FineID); err != nil {
		h.fail(w, r, err)
		return
	}
	writeResult(w, nil)
}

func (h *Handlers) UserLogin(w http.ResponseWriter, r *http.Request) {
	user, err := h.UC.Login(r.Context(), auth.FromContext(r.Context()))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeResult(w, user)
}

func (h *Handlers) UserRegister(w http.ResponseWriter, r *http.Request) {
	user, err := h.UC.Register(r.Context(), auth.FromContext(r.Context()))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeResult(w, user)
}

func (h *Handlers) UserRoleEdit(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		TeamID domain.TeamID  `json:"teamId"`
		UserID domain.UserID  `json:"userId"`
		Roles  domain.RoleSet `json:"roles"`
	}
	if !decode(w, r, &payload) {
		return
	}
	if err := h.UC.EditRoles(r.Context(), auth.FromContext(r.Context()), payload.TeamID, payload.UserID, payload.Roles); err != nil {
		h.fail(w, r, err)
		return
	}
	writeResult(w, nil)
}

type invitationTargetPayload struct {
	TeamID   domain.TeamID   `json:"teamId"`
	PersonID domain.PersonID `json:"personId"`
}

func (h *Handlers) InvitationInvite(w http.ResponseWriter, r *http.Request) {
	var payload invitationTargetPayload
	if !decode(w, r, &payload) {
		return
	}
	invID, err := h.UC.Invite(r.Context(), auth.FromContext(r.Context()), payload.TeamID, payload.PersonID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeResult(w, map[string]domain.InvitationID{"invitationId": invID})
}

func (h *Handlers) InvitationWithdraw(w http.ResponseWriter, r *http.Request) {
	var payload invitationTargetPayload
	if !decode(w, r, &payload) {
		return
	}
	if err := h.UC.Withdraw(r.Context(), auth.FromContext(r.Context()), payload.TeamID, payload.PersonID); err != nil {
		h.fail(w, r, err)
		return
	}
	writeResult(w, nil)
}

type invitationPayload struct {
	InvitationID domain.InvitationID `json:"invitationId"`
}

func (h *Handlers) InvitationGetPerson(w http.ResponseWriter, r *http.Request) {
	var payload invitationPayload
	if !decode(w, r, &payload) {
		return
	}
	invited, err := h.UC.InvitationPerson(r.Context(), auth.FromContext(r.Context()), payload.InvitationID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeResult(w, invited)
}

func (h *Handlers) InvitationRegister(w http.ResponseWriter, r *http.Request) {
	var payload invitationPayload
	if !decode(w, r, &payload) {
		return
	}
	user, err := h.UC.AcceptInvitation(r.Context(), auth.FromContext(r.Context()), payload.InvitationID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeResult(w, user)
}

func (h *Handlers) NotificationRegister(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		TeamID   domain.TeamID   `json:"teamId"`
		PersonID domain.PersonID `json:"personId"`
		Token    string          `json:"token"`
	}
	if !decode(w, r, &payload) {
		return
	}
	tokenID, err := h.UC.RegisterToken(r.Context(), auth.FromContext(r.Context()), payload.TeamID, payload.PersonID, payload.Token)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeResult(w, map[string]domain.TokenID{"tokenId": tokenID})
}

func (h *Handlers) NotificationSubscribe(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		TeamID   domain.TeamID   `json:"teamId"`
		PersonID domain.PersonID `json:"personId"`
		Topics   []domain.Topic  `json:"topics"`
	}
	if !decode(w, r, &payload) {
		return
	}
	if err := h.UC.Subscribe(r.Context(), auth.FromContext(r.Context()), payload.TeamID, payload.PersonID, payload.Topics); err != nil {
		h.fail(w, r, err)
		return
	}
	writeResult(w, nil)
}
