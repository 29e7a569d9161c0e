package api

import (
	"fmt"

	"github.com/fsdevblog/groph-settle/internal/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const settlementStatusTag = "settlement_status"

// validateSettlementStatus пропускает только конечные статусы, в которые можно перевести заявку.
func validateSettlementStatus(fl validator.FieldLevel) bool {
	str, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	_, err := domain.ParseTargetStatus(str)
	return err == nil
}

func registerValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("validator registration: unexpected engine %T", binding.Validator.Engine())
	}
	if err := v.RegisterValidation(settlementStatusTag, validateSettlementStatus); err != nil {
		return fmt.Errorf("validator registration: %s", err.Error())
	}
	return nil
}
