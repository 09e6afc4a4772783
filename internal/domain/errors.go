package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound        = errors.New("recurso no encontrado")
	ErrProductNotFound = errors.New("producto no encontrado")
	ErrSiteNotFound    = errors.New("sede no encontrada")
	ErrRuleNotFound    = errors.New("regla de distribución no encontrada")
	ErrInvalidInput    = errors.New("entrada inválida")
	ErrInvalidMap      = errors.New("el mapa de distribución no suma 100%")
	ErrRuleOverlap     = errors.New("ya existe una regla activa con el mismo alcance y ventana de vigencia")
	ErrUnauthorized    = errors.New("no autorizado")
	ErrForbidden       = errors.New("acceso denegado")
)
