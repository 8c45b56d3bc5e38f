// species.go embedded reference data for the supported Mediterranean species
package catalog

// minSize is a helper for the optional legal minimum size.
func minSize(cm int) *int { return &cm }

// speciesData maps the classifier label (Latin name) to its record. The
// model head was trained over exactly this key set; adding or removing an
// entry without retraining desynchronizes every prediction.
var speciesData = map[string]Species{
	"Epinephelus marginatus": {
		Name:             "דקר הסלעים (לוקוס)",
		NativeStatus:     "מקומי",
		PopulationStatus: "מוגן",
		AvgSizeCM:        60,
		Regulations: Regulations{
			MinSizeCM:   minSize(40),
			Protected:   true,
			SeasonalBan: true,
			Notes:       "אסור לדיג מתחת ל-40 ס״מ ואסור בתקופת הרבייה.",
		},
		Description: "דג גדול החי בשוניות סלעיות. גדל לאט ונפגע בקלות מדיג יתר.",
	},
	"Dicentrarchus labrax": {
		Name:             "לברק",
		NativeStatus:     "מקומי",
		PopulationStatus: "נפוץ",
		AvgSizeCM:        50,
		Regulations: Regulations{
			MinSizeCM:   minSize(25),
			SeasonalBan: true,
			Notes:       "אסור לדיג בתקופת הרבייה.",
		},
		Description: "דג טורף החי בקרבת החוף, לעיתים בשפכים ולגונות.",
	},
	"Sparus aurata": {
		Name:             "דניס (צ׳יפורה)",
		NativeStatus:     "מקומי (גם מגודל בחקלאות ימית)",
		PopulationStatus: "נפוץ מאוד",
		AvgSizeCM:        35,
		Regulations: Regulations{
			Notes: "מין נפוץ מאוד ומגודל באופן מסחרי.",
		},
		Description: "דג ממשפחת הספרוסיים, נפוץ בקרקעית חולית וסלעית.",
	},
	"Siganus rivulatus": {
		Name:             "סיכן (אראס)",
		NativeStatus:     "לספסי (מהים האדום)",
		PopulationStatus: "נפוץ מאוד",
		AvgSizeCM:        25,
		Regulations: Regulations{
			Notes: "קוצים ארסיים בגב הדג. יש להיזהר ממגע.",
		},
		Description: "דג צמחוני פולש שהתפשט במהירות בים התיכון.",
	},
	"Pterois miles": {
		Name:             "זהרון הדור",
		NativeStatus:     "פולש",
		PopulationStatus: "בהתפשטות",
		AvgSizeCM:        35,
		Regulations: Regulations{
			Notes: "ארסי מאוד. יש להימנע ממגע ישיר.",
		},
		Description: "דג פולש בעל קוצים ארסיים הפוגע באיזון האקולוגי.",
	},
	"Lagocephalus sceleratus": {
		Name:             "אבו נפחא (לגמנון כסוף)",
		NativeStatus:     "פולש",
		PopulationStatus: "נפוץ מאוד",
		AvgSizeCM:        50,
		Regulations: Regulations{
			Notes: "רעיל ביותר למאכל (טטרודוטוקסין). אסור למכירה ולצריכה.",
		},
		Description: "דג נפוח מסוכן המכיל רעל קטלני באיבריו הפנימיים.",
	},
	"Trachinus draco": {
		Name:             "דרקון",
		NativeStatus:     "מקומי",
		PopulationStatus: "נפוץ",
		AvgSizeCM:        25,
		Regulations: Regulations{
			Notes: "עוקץ ארסי בגב הדג. מצוי בחול רדוד.",
		},
		Description: "דג קרקעית קטן החבוי לעיתים בתוך החול.",
	},
	"Balistes carolinensis": {
		Name:             "נצרן ים תיכוני (חזיר ים)",
		NativeStatus:     "מקומי",
		PopulationStatus: "לא נפוץ",
		AvgSizeCM:        45,
		Regulations: Regulations{
			Notes: "שיניים חזקות במיוחד ועור קשיח.",
		},
		Description: "דג חזק בעל מנגנון נעילת סנפיר גב ולסתות עוצמתיות.",
	},
	"Diplodus sargus": {
		Name:             "סרגוס מסורטט",
		NativeStatus:     "מקומי",
		PopulationStatus: "נפוץ מאוד",
		AvgSizeCM:        30,
		Regulations: Regulations{
			MinSizeCM: minSize(11),
			Notes:     "דג פופולרי לדיג חופי.",
		},
		Description: "דג כסוף עם פסים שחורים אנכיים, חי באזורים סלעיים.",
	},
	"Euthynnus alletteratus": {
		Name:             "טונית אטלנטית",
		NativeStatus:     "מקומי",
		PopulationStatus: "נפוץ (עונתי)",
		AvgSizeCM:        80,
		Regulations: Regulations{
			Notes: "דג מהיר מאוד ממשפחת הקוליסיים.",
		},
		Description: "טורף פלאגי החי בלהקות במים פתוחים.",
	},
	"Lithognathus mormyrus": {
		Name:             "שישן מסורטט (מרמיר)",
		NativeStatus:     "מקומי",
		PopulationStatus: "נפוץ",
		AvgSizeCM:        25,
		Regulations: Regulations{
			MinSizeCM: minSize(11),
			Notes:     "נמצא לרוב על קרקעית חולית.",
		},
		Description: "דג בעל גוף מוארך ופסים דקים, מחפש מזון בחול.",
	},
	"Mugil cephalus": {
		Name:             "קיפון גדול ראש (בורי)",
		NativeStatus:     "מקומי",
		PopulationStatus: "נפוץ מאוד",
		AvgSizeCM:        45,
		Regulations: Regulations{
			MinSizeCM: minSize(20),
			Notes:     "נפוץ בים ובשפכי נהרות.",
		},
		Description: "דג כסוף הניזון מאצות ומרקבובית בקרקעית.",
	},
	"Mullus surmuletus": {
		Name:             "מולית אדומה (סולטאן איברהים)",
		NativeStatus:     "מקומי",
		PopulationStatus: "נפוץ",
		AvgSizeCM:        20,
		Regulations: Regulations{
			MinSizeCM: minSize(11),
			Notes:     "נחשב לדג מאכל איכותי מאוד.",
		},
		Description: "דג קרקעית אדמדם בעל זוג בחנינים מתחת לסנטר.",
	},
	"Pagrus caeruleostictus": {
		Name:             "ספרוס זהוב (פרידה)",
		NativeStatus:     "מקומי",
		PopulationStatus: "נפוץ",
		AvgSizeCM:        50,
		Regulations: Regulations{
			MinSizeCM: minSize(20),
			Notes:     "דג ערכי מאוד למסחר ולדיג.",
		},
		Description: "דג ורדרד עם נקודות כחולות מנצנצות.",
	},
	"Plotosus lineatus": {
		Name:             "שפמית ארסית (נסראללה)",
		NativeStatus:     "פולש",
		PopulationStatus: "נפוץ מאוד",
		AvgSizeCM:        25,
		Regulations: Regulations{
			Notes: "ארסי מאוד בקוצי הסנפיר. סכנה למגע!",
		},
		Description: "דג דמוי שפמנון פולש עם פסי אורך לבנים.",
	},
	"Pomatomus saltatrix": {
		Name:             "גומבר",
		NativeStatus:     "מקומי",
		PopulationStatus: "נפוץ מאוד",
		AvgSizeCM:        60,
		Regulations: Regulations{
			Notes: "דג תוקפני בעל שיניים חדות.",
		},
		Description: "טורף חופי חזק הידוע במאבקיו בעת הדיג.",
	},
	"Sarpa salpa": {
		Name:             "סלפית זהובה (כחילה/צלוואט)",
		NativeStatus:     "מקומי",
		PopulationStatus: "נפוץ מאוד",
		AvgSizeCM:        30,
		Regulations: Regulations{
			Notes: "עלול לגרום להזיות במקרים נדירים של אכילה.",
		},
		Description: "דג צמחוני עם פסי אורך זהובים בולטים.",
	},
	"Seriola dumerili": {
		Name:             "אינטיאס (שולה)",
		NativeStatus:     "מקומי",
		PopulationStatus: "נפוץ (עונתי)",
		AvgSizeCM:        100,
		Regulations: Regulations{
			MinSizeCM: minSize(30),
			Notes:     "אחד מדגי הספורט הנחשקים ביותר.",
		},
		Description: "טורף עוצמתי היכול להגיע למשקלים גדולים מאוד.",
	},
	"Serranus scriba": {
		Name:             "אוקונוס משורטט",
		NativeStatus:     "מקומי",
		PopulationStatus: "נפוץ",
		AvgSizeCM:        20,
		Regulations: Regulations{
			Notes: "דג קטן וצבעוני שאינו נחשב למטרה עיקרית.",
		},
		Description: "דג שונית קטן עם דגמי צבע מורכבים על הראש.",
	},
	"Sphyraena": {
		Name:             "ברקודה (מליטה)",
		NativeStatus:     "מקומי/פולש (מספר מינים)",
		PopulationStatus: "נפוץ מאוד",
		AvgSizeCM:        70,
		Regulations: Regulations{
			Notes: "טורף בעל גוף מוארך ושיניים חדות.",
		},
		Description: "צייד מהיר האורב לטרפו בלהקות או כבודד.",
	},
}
