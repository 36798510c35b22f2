package dto

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/tukarkoin/tukar_koin_app/internal/core/domain"
)

// assignmentStatusValidator accepts the three lifecycle statuses.
func assignmentStatusValidator(fl validator.FieldLevel) bool {
	switch domain.AssignmentStatus(fl.Field().String()) {
	case domain.AssignmentReady, domain.AssignmentActive, domain.AssignmentCompleted:
		return true
	}
	return false
}

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("assignmentstatus", assignmentStatusValidator)
	}
}
