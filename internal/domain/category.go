package domain

import (
	"sort"
	"strconv"
)

// CategoryKind identifies one of the six fixed thematic categories. The set
// is closed; [CategoryKinds] is the canonical iteration order.
type CategoryKind string

const (
	CategoryChildcare CategoryKind = "childcare"
	CategoryMedical   CategoryKind = "medical"
	CategorySafety    CategoryKind = "safety"
	CategoryEconomy   CategoryKind = "economy"
	CategoryEducation CategoryKind = "education"
	CategoryLiving    CategoryKind = "living"
)

// CategoryKinds lists all categories in display order.
var CategoryKinds = []CategoryKind{
	CategoryChildcare,
	CategoryMedical,
	CategorySafety,
	CategoryEconomy,
	CategoryEducation,
	CategoryLiving,
}

// Indicator category codes (e-Stat cat01).
const (
	CodeTotalPop     = "A1101"
	CodeMalePop      = "A110101"
	CodeFemalePop    = "A110102"
	CodeUnder15      = "A1301"
	CodeAge15to64    = "A1302"
	CodeOver65       = "A1303"
	CodeForeigners   = "A1700"
	CodeHouseholds   = "A7101"
	CodeElderSingle  = "A8301"
	CodeTaxIncome    = "C120110"
	CodeTaxpayers    = "C120120"
	CodeBusinesses   = "C2107"
	CodeRevenue      = "D3201"
	CodeElemSchools  = "E2101"
	CodeMidSchools   = "E3101"
	CodeLibraries    = "G1401"
	CodeNewHousing   = "H1800"
	CodeHospitals    = "I510120"
	CodeClinics      = "I5102"
	CodeDoctors      = "I6100"
	CodeNurseries    = "J2503"
	CodeChildWelfare = "J2501"
	CodeTrafficAcc   = "K3101"
	CodeCrimes       = "K4201"
)

// IndicatorDef ties an indicator code to the e-Stat table it lives in and its
// display metadata.
type IndicatorDef struct {
	TableID string
	Label   string
	Unit    string
}

// Indicators maps each fetched indicator code to its definition. Pure static
// configuration, initialized once and never mutated.
var Indicators = map[string]IndicatorDef{
	CodeTotalPop:     {TableID: "0000020201", Label: "総人口", Unit: "人"},
	CodeMalePop:      {TableID: "0000020201", Label: "男性人口", Unit: "人"},
	CodeFemalePop:    {TableID: "0000020201", Label: "女性人口", Unit: "人"},
	CodeUnder15:      {TableID: "0000020201", Label: "15歳未満人口", Unit: "人"},
	CodeAge15to64:    {TableID: "0000020201", Label: "15〜64歳人口", Unit: "人"},
	CodeOver65:       {TableID: "0000020201", Label: "65歳以上人口", Unit: "人"},
	CodeForeigners:   {TableID: "0000020201", Label: "外国人人口", Unit: "人"},
	CodeHouseholds:   {TableID: "0000020201", Label: "世帯数", Unit: "世帯"},
	CodeElderSingle:  {TableID: "0000020201", Label: "65歳以上単独世帯数", Unit: "世帯"},
	CodeTaxIncome:    {TableID: "0000020203", Label: "課税対象所得", Unit: "千円"},
	CodeTaxpayers:    {TableID: "0000020203", Label: "納税義務者数", Unit: "人"},
	CodeBusinesses:   {TableID: "0000020203", Label: "事業所数", Unit: "か所"},
	CodeRevenue:      {TableID: "0000020204", Label: "歳入決算総額", Unit: "千円"},
	CodeElemSchools:  {TableID: "0000020205", Label: "小学校数", Unit: "校"},
	CodeMidSchools:   {TableID: "0000020205", Label: "中学校数", Unit: "校"},
	CodeLibraries:    {TableID: "0000020207", Label: "図書館数", Unit: "館"},
	CodeNewHousing:   {TableID: "0000020208", Label: "着工新設住宅戸数", Unit: "戸"},
	CodeHospitals:    {TableID: "0000020209", Label: "一般病院数", Unit: "か所"},
	CodeClinics:      {TableID: "0000020209", Label: "一般診療所数", Unit: "か所"},
	CodeDoctors:      {TableID: "0000020209", Label: "医師数", Unit: "人"},
	CodeNurseries:    {TableID: "0000020210", Label: "保育所等数", Unit: "か所"},
	CodeChildWelfare: {TableID: "0000020210", Label: "児童福祉施設数", Unit: "か所"},
	CodeTrafficAcc:   {TableID: "0000020211", Label: "交通事故発生件数", Unit: "件"},
	CodeCrimes:       {TableID: "0000020211", Label: "刑法犯認知件数", Unit: "件"},
}

// IndicatorRef names one indicator used in a category score. Invert marks
// lower-is-better indicators: more crime lowers the safety score.
type IndicatorRef struct {
	Code   string
	Invert bool
}

// CategoryDef is the static definition of one category: presentation
// metadata plus the indicators its deviation score is built from.
type CategoryDef struct {
	Kind    CategoryKind
	Label   string
	Emoji   string
	Color   string
	Scoring []IndicatorRef
}

// Categories defines the six categories. Scoring lists use raw indicator
// codes; display items are assembled separately because two of them are
// derived metrics rather than direct lookups.
var Categories = map[CategoryKind]CategoryDef{
	CategoryChildcare: {
		Kind: CategoryChildcare, Label: "子育て", Emoji: "👶", Color: "#22c55e",
		Scoring: []IndicatorRef{{Code: CodeNurseries}, {Code: CodeChildWelfare}},
	},
	CategoryMedical: {
		Kind: CategoryMedical, Label: "医療", Emoji: "🏥", Color: "#ef4444",
		Scoring: []IndicatorRef{{Code: CodeHospitals}, {Code: CodeClinics}, {Code: CodeDoctors}},
	},
	CategorySafety: {
		Kind: CategorySafety, Label: "安全", Emoji: "🛡️", Color: "#f97316",
		Scoring: []IndicatorRef{{Code: CodeCrimes, Invert: true}, {Code: CodeTrafficAcc, Invert: true}},
	},
	CategoryEconomy: {
		Kind: CategoryEconomy, Label: "経済", Emoji: "💰", Color: "#a855f7",
		Scoring: []IndicatorRef{{Code: CodeTaxIncome}, {Code: CodeBusinesses}, {Code: CodeRevenue}},
	},
	CategoryEducation: {
		Kind: CategoryEducation, Label: "教育", Emoji: "📚", Color: "#0d9488",
		Scoring: []IndicatorRef{{Code: CodeElemSchools}, {Code: CodeMidSchools}, {Code: CodeLibraries}},
	},
	CategoryLiving: {
		Kind: CategoryLiving, Label: "暮らし", Emoji: "🏠", Color: "#3b82f6",
		Scoring: []IndicatorRef{{Code: CodeHouseholds}, {Code: CodeNewHousing}, {Code: CodeElderSingle, Invert: true}},
	},
}

// WardNames maps area codes to ward names.
var WardNames = map[string]string{
	"13101": "千代田区", "13102": "中央区", "13103": "港区",
	"13104": "新宿区", "13105": "文京区", "13106": "台東区",
	"13107": "墨田区", "13108": "江東区", "13109": "品川区",
	"13110": "目黒区", "13111": "大田区", "13112": "世田谷区",
	"13113": "渋谷区", "13114": "中野区", "13115": "杉並区",
	"13116": "豊島区", "13117": "北区", "13118": "荒川区",
	"13119": "板橋区", "13120": "練馬区", "13121": "足立区",
	"13122": "葛飾区", "13123": "江戸川区",
}

// WardCodes returns the 23 special-ward area codes in ascending order.
// Snapshot ward order follows this.
func WardCodes() []string {
	codes := make([]string, 0, 23)
	for i := 13101; i <= 13123; i++ {
		codes = append(codes, strconv.Itoa(i))
	}
	return codes
}

// TableGroups groups the fetched indicator codes by their e-Stat table so one
// request covers a whole table. Codes within a group are sorted for
// deterministic request URLs.
func TableGroups() map[string][]string {
	groups := make(map[string][]string)
	for code, def := range Indicators {
		groups[def.TableID] = append(groups[def.TableID], code)
	}
	for _, codes := range groups {
		sort.Strings(codes)
	}
	return groups
}
