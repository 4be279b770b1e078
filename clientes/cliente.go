package clientes

// Cliente is a pet owner record together with the pet's data. ID and
// VeterinariaID are assigned by the service and ignored on writes.
type Cliente struct {
	ID             int      `json:"id,omitempty"`
	NombreDueno    string   `json:"nombre_dueno" validate:"required"`
	TelefonoDueno  string   `json:"telefono_dueno,omitempty"`
	EmailDueno     string   `json:"email_dueno,omitempty" validate:"omitempty,email"`
	DireccionDueno string   `json:"direccion_dueno,omitempty"`
	NombreMascota  string   `json:"nombre_mascota" validate:"required"`
	Especie        string   `json:"especie" validate:"required"`
	Raza           string   `json:"raza,omitempty"`
	Edad           *float64 `json:"edad,omitempty" validate:"omitempty,gte=0"`
	Peso           *float64 `json:"peso,omitempty" validate:"omitempty,gte=0"`
	Notas          string   `json:"notas,omitempty"`
	VeterinariaID  int      `json:"veterinaria_id,omitempty"`
}

// Float returns a pointer to v, for the optional numeric fields
func Float(v float64) *float64 {
	return &v
}
