package entities

type BondHolderRow struct {
	ID           string `json:"id"`
	FullName     string `json:"full_name"`
	EmployeeCode string `json:"employee_code"`
	Tier         int    `json:"tier"`
}
