package kpi

type Status string

const (
	StatusNeutral Status = "neutral"
	StatusSuccess Status = "success"
	StatusWarning Status = "warning"
	StatusDanger  Status = "danger"
)

// Hedeften sapma bu değerin altındaysa danger
const warningThreshold = -10

// CalculateStatus hedef ile gerçekleşen arasındaki farka göre durumu hesaplar.
// Eşik hedefin büyüklüğünden bağımsız, sabit -10'dur.
func CalculateStatus(target, actual float64) Status {
	if target == 0 {
		return StatusNeutral
	}

	deviation := actual - target
	switch {
	case deviation >= 0:
		return StatusSuccess
	case deviation >= warningThreshold:
		return StatusWarning
	default:
		return StatusDanger
	}
}
