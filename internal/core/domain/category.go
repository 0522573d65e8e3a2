package domain

// FallbackCategoryColor is used for categories missing from the fixed tables.
const FallbackCategoryColor = "#95AFFE"

// ExpenseCategories maps each fixed expense category to its display color.
var ExpenseCategories = map[string]string{
	"ต้นทุนสินค้า":      "#FF6B6B",
	"ค่าขนส่ง":          "#4ECDC4",
	"ค่าเช่าร้าน/ที่":   "#45B7D1",
	"ค่าสาธารณูปโภค":    "#96CEB4",
	"ค่าแรงพนักงาน":     "#FECA57",
	"ค่าการตลาด/โฆษณา":  "#FF9FF3",
	"ค่าวัสดุอุปกรณ์":   "#A55EC4",
	"ค่าบำรุงรักษา":     "#FDA7DF",
	"ภาษี":              "#D980FA",
	"อื่นๆ":             "#95AFFE",
}

// IncomeCategories maps each fixed income category to its display color.
var IncomeCategories = map[string]string{
	"ขายสินค้า":    "#10B981",
	"ขายบริการ":    "#34D399",
	"รายได้อื่นๆ":  "#6EE7B7",
}

// CategoryColor resolves the display color for an expense category,
// falling back to FallbackCategoryColor for unknown names.
func CategoryColor(name string) string {
	if color, ok := ExpenseCategories[name]; ok {
		return color
	}
	return FallbackCategoryColor
}

// IsValidCategory reports whether the category belongs to the fixed set for the type.
func IsValidCategory(txnType TransactionType, name string) bool {
	switch txnType {
	case Expense:
		_, ok := ExpenseCategories[name]
		return ok
	case Income:
		_, ok := IncomeCategories[name]
		return ok
	default:
		return false
	}
}
