package model

// PackID 积分套餐标识
type PackID string

const (
	PackSmall  PackID = "SMALL"
	PackMedium PackID = "MEDIUM"
	PackLarge  PackID = "LARGE"
)

// CreditsPack 积分套餐
type CreditsPack struct {
	ID      PackID `json:"id"`
	Name    string `json:"name"`
	Label   string `json:"label"`
	Credits int64  `json:"credits"`
	// Price 价格，单位为美分
	Price int64 `json:"price"`
}

// CreditsPacks 全部可售套餐
var CreditsPacks = []CreditsPack{
	{
		ID:      PackSmall,
		Name:    "Small Pack",
		Label:   "1,000 credits",
		Credits: 1000,
		Price:   999,
	},
	{
		ID:      PackMedium,
		Name:    "Medium Pack",
		Label:   "5,000 credits",
		Credits: 5000,
		Price:   3900,
	},
	{
		ID:      PackLarge,
		Name:    "Large Pack",
		Label:   "10,000 credits",
		Credits: 10000,
		Price:   6900,
	},
}

// GetCreditsPack 按ID查找套餐
func GetCreditsPack(id PackID) *CreditsPack {
	for i := range CreditsPacks {
		if CreditsPacks[i].ID == id {
			return &CreditsPacks[i]
		}
	}
	return nil
}
