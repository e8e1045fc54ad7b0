// Package reports описывает строки отчётов менеджеров и агрегаты по ним.
package reports

// MorningData — утренний план менеджера на день.
type MorningData struct {
	CallsPlanned       int
	LeadsUnitsPlanned  int
	LeadsVolumePlanned float64 // млн
	NewCallsPlanned    int
}

// EveningData — вечерний факт менеджера за день.
type EveningData struct {
	CallsSuccess   int
	LeadsUnits     int
	LeadsVolume    float64 // млн
	ApprovedVolume float64 // млн
	IssuedVolume   float64 // млн
	NewCalls       int
}

// Report — одна строка листа Reports: (дата, менеджер) + обе половины дня.
// Половины заполняются независимо, незаполненная остаётся нулевой.
type Report struct {
	Date    string // YYYY-MM-DD
	Manager string
	Office  string
	Morning MorningData
	Evening EveningData
}

// ManagerTotals — суммы план/факт по менеджеру за период.
type ManagerTotals struct {
	Name            string
	CallsPlan       int
	CallsFact       int
	LeadsUnitsPlan  int
	LeadsUnitsFact  int
	LeadsVolumePlan float64
	LeadsVolumeFact float64
	ApprovedVolume  float64
	IssuedVolume    float64
	NewCallsPlan    int
	NewCalls        int
}

// CallsPercent — выполнение плана по перезвонам; 0 при нулевом плане.
func (t ManagerTotals) CallsPercent() float64 {
	return percent(float64(t.CallsFact), float64(t.CallsPlan))
}

// LeadsUnitsPercent — выполнение плана по заявкам в штуках; 0 при нулевом плане.
func (t ManagerTotals) LeadsUnitsPercent() float64 {
	return percent(float64(t.LeadsUnitsFact), float64(t.LeadsUnitsPlan))
}

// LeadsVolumePercent — выполнение плана по объёму заявок; 0 при нулевом плане.
func (t ManagerTotals) LeadsVolumePercent() float64 {
	return percent(t.LeadsVolumeFact, t.LeadsVolumePlan)
}

func percent(fact, plan float64) float64 {
	if plan <= 0 {
		return 0
	}
	return fact / plan * 100
}

// DailyPoint — суммарные показатели всех менеджеров за один день, для графиков.
type DailyPoint struct {
	Date            string
	CallsFact       int
	NewCalls        int
	LeadsUnitsFact  int
	LeadsVolumePlan float64
	LeadsVolumeFact float64
	ApprovedVolume  float64
	IssuedVolume    float64
}
