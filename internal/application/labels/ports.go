package labels

// LabelData datos de una etiqueta QR a renderizar.
type LabelData struct {
	Code      string // contenido del QR
	BoxNumber string
	ItemCode  string
	ItemName  string
	Batch     string
	Expiry    string // ya formateada; vacía si no aplica
}

// LabelRenderer puerto de salida para generar la hoja PDF de etiquetas.
type LabelRenderer interface {
	Render(labels []LabelData) ([]byte, error)
}
