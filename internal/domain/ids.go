package domain

import "github.com/google/uuid"

// ParseID valida que id sea un UUID y lo devuelve en forma canónica.
// Vacío o mal formado devuelve InvalidInputError sobre field.
func ParseID(field, id string) (string, error) {
	if id == "" {
		return "", Invalid(field, "es requerido")
	}
	u, err := uuid.Parse(id)
	if err != nil {
		return "", Invalid(field, "no es un identificador válido")
	}
	return u.String(), nil
}
