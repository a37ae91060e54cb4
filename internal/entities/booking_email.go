package entities

type BookingEmailData struct {
	UserName    string
	SlotDate    string
	SlotTime    string
	BookingID   uint
	CurrentYear int
}

type AgendaEntry struct {
	Time  string
	Name  string
	Email string
}

type AgendaEmailData struct {
	Date        string
	Entries     []AgendaEntry
	CurrentYear int
}
