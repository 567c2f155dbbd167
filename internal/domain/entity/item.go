package entity

// Item es el modelo de lectura del catálogo de artículos. El catálogo lo
// administra un sistema externo; aquí solo se consultan identidad y nombre
// para denormalizar la bitácora y validar la generación de etiquetas.
type Item struct {
	Code string
	Name string
	Unit string // unidad de medida (kg, und, ...)
}
