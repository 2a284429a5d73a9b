package dto

// DashboardKPIsDTO resumen financiero del dashboard.
// Expenses siempre es 0 y Profit == SalesMonth: el módulo de gastos no está
// implementado, por lo que "utilidad" es un marcador de posición, no una
// utilidad real.
type DashboardKPIsDTO struct {
	SalesMonth    int64 `json:"salesMonth"`
	SalesCount    int   `json:"salesCount"`
	Expenses      int64 `json:"expenses"`
	Profit        int64 `json:"profit"`
	ActiveClients int   `json:"activeClients"`
}

// SalesDataPointDTO total vendido en un día calendario (fecha YYYY-MM-DD).
type SalesDataPointDTO struct {
	Date   string `json:"date"`
	Amount int64  `json:"amount"`
}

// TopTreatmentDTO agregado de un tratamiento en el período.
type TopTreatmentDTO struct {
	Treatment string `json:"treatment"`
	Count     int    `json:"count"`
	Revenue   int64  `json:"revenue"`
}
