package recipe

// Mode 食譜模式
type Mode string

const (
	ModeQuick           Mode = "Quick"
	ModeBudget          Mode = "Budget"
	ModeDietFriendly    Mode = "Diet-friendly"
	ModeStudentFriendly Mode = "Student-friendly"
	ModeHighProtein     Mode = "High-protein"
	ModeMealPrep        Mode = "Meal prep"
	ModeOnePan          Mode = "One-pan / minimal dishes"
	ModeLowCalorie      Mode = "Low-calorie"
)

// Style 料理風格
type Style string

const (
	StyleHomeStyle      Style = "Home-style"
	StyleAsian          Style = "Asian"
	StyleMediterranean  Style = "Mediterranean"
	StyleItalian        Style = "Italian"
	StyleMexican        Style = "Mexican"
	StyleIndianInspired Style = "Indian-inspired"
	StyleHealthyLight   Style = "Healthy / light"
	StyleComfortFood    Style = "Comfort food"
	StyleGeorgian       Style = "Georgian"
)

// 份量限制
const (
	MinServings     = 1
	MaxServings     = 8
	DefaultServings = 2
)

// Modes 可選模式，依顯示順序
var Modes = []Mode{
	ModeQuick,
	ModeBudget,
	ModeDietFriendly,
	ModeStudentFriendly,
	ModeHighProtein,
	ModeMealPrep,
	ModeOnePan,
	ModeLowCalorie,
}

// Styles 可選風格，依顯示順序
var Styles = []Style{
	StyleHomeStyle,
	StyleAsian,
	StyleMediterranean,
	StyleItalian,
	StyleMexican,
	StyleIndianInspired,
	StyleHealthyLight,
	StyleComfortFood,
	StyleGeorgian,
}

// IsValidMode 檢查模式是否在可選清單中
func IsValidMode(m string) bool {
	for _, mode := range Modes {
		if string(mode) == m {
			return true
		}
	}
	return false
}

// IsValidStyle 檢查風格是否在可選清單中
func IsValidStyle(s string) bool {
	for _, style := range Styles {
		if string(style) == s {
			return true
		}
	}
	return false
}

// IsValidServings 檢查份量是否在 1 到 8 之間
func IsValidServings(n int) bool {
	return n >= MinServings && n <= MaxServings
}
