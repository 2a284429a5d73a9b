package entity

// ClinicConfigID es el ID de la única fila de configuración del consultorio.
const ClinicConfigID = "singleton"

// ClinicConfig son los datos generales del consultorio (fila única).
type ClinicConfig struct {
	ID      string
	Name    string
	Address string
	Phone   string
	Email   string
	Website string
}
