package entity

// Customer bloque de contacto de la contraparte (destinatario del documento).
type Customer struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
}

// Sender datos del emisor impresos en el bloque "From".
type Sender struct {
	Name         string
	AddressLine1 string
	AddressLine2 string
	Phone        string
	Email        string
}
