package handlers

import (
	"log"
	"net/http"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"costestimator/collections"
)

// projectFieldOrder is the order project fields are reported in errors.
var projectFieldOrder = []string{
	"project_name",
	"project_address",
	"company_name",
	"architect_info",
	"project_date",
	"revision",
}

// projectRequest is the body of project create and update calls. Nil
// pointers are fields the client did not send.
type projectRequest struct {
	ProjectName    *string `json:"project_name"`
	ProjectAddress *string `json:"project_address"`
	CompanyName    *string `json:"company_name"`
	ArchitectInfo  *string `json:"architect_info"`
	ProjectDate    *string `json:"project_date"`
	Revision       *string `json:"revision"`
}

func (p *projectRequest) trim() {
	for _, s := range []*string{p.ProjectName, p.ProjectAddress, p.CompanyName, p.ArchitectInfo, p.ProjectDate, p.Revision} {
		if s != nil {
			*s = strings.TrimSpace(*s)
		}
	}
}

// validate checks the sent fields. On create, name and date are required.
func (p *projectRequest) validate(create bool) error {
	nameRules := []validation.Rule{validation.NilOrNotEmpty}
	dateRules := []validation.Rule{validation.NilOrNotEmpty, validation.Date("2006-01-02")}
	if create {
		nameRules = append(nameRules, validation.NotNil)
		dateRules = append(dateRules, validation.NotNil)
	}
	return validation.ValidateStruct(p,
		validation.Field(&p.ProjectName, nameRules...),
		validation.Field(&p.ProjectDate, dateRules...),
		validation.Field(&p.Revision, validation.NilOrNotEmpty),
	)
}

// apply copies the sent fields onto the record.
func (p *projectRequest) apply(record *core.Record) {
	set := func(name string, v *string) {
		if v != nil {
			record.Set(name, *v)
		}
	}
	set("project_name", p.ProjectName)
	set("project_address", p.ProjectAddress)
	set("company_name", p.CompanyName)
	set("architect_info", p.ArchitectInfo)
	set("project_date", p.ProjectDate)
	set("revision", p.Revision)
}

// HandleProjectCreate creates a project owned by the caller.
func HandleProjectCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var req projectRequest
		if err := decodeJSON(e.Request, &req); err != nil {
			return jsonError(e, http.StatusBadRequest, "Invalid JSON body")
		}
		req.trim()
		if err := req.validate(true); err != nil {
			if handled, herr := inputError(e, err); handled {
				return herr
			}
			return jsonError(e, http.StatusBadRequest, err.Error())
		}

		projectsCol, err := app.FindCollectionByNameOrId("projects")
		if err != nil {
			log.Printf("project_create: could not find projects collection: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		record := core.NewRecord(projectsCol)
		record.Set("owner", authUserID(e))
		record.Set("revision", collections.DefaultRevision)
		req.apply(record)

		if err := app.Save(record); err != nil {
			log.Printf("project_create: could not save project: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusCreated, projectJSON(record))
	}
}
