package service

import (
	"errors"

	"colegio_backend/internals/features/school/partners/model"
)

var ErrMultipleBillingGuardians = errors.New("solo un tutor puede estar marcado para facturar")

// ValidateBillingGuardians comprueba que como mucho un tutor del alumno
// tenga el flag de facturación.
func ValidateBillingGuardians(guardians []model.GuardianModel) error {
	billing := 0
	for _, g := range guardians {
		if g.GuardianIsBilling {
			billing++
		}
	}
	if billing > 1 {
		return ErrMultipleBillingGuardians
	}
	return nil
}

// BillingGuardian devuelve el tutor de facturación del alumno, o el
// primero como respaldo; nil si no hay tutores.
func BillingGuardian(guardians []model.GuardianModel) *model.GuardianModel {
	for i := range guardians {
		if guardians[i].GuardianIsBilling {
			return &guardians[i]
		}
	}
	if len(guardians) > 0 {
		return &guardians[0]
	}
	return nil
}
