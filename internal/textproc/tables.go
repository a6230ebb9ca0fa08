package textproc

// Substitution tables are configuration data, not logic: the processor only
// iterates them, so adding a language means adding entries here. The
// Portuguese table is the primary one; English and Spanish are carried for
// the locales the original shipped.

// Symbol maps one standalone character sequence to its spoken name.
// Symbols are applied in slice order, so longer sequences come first.
type Symbol struct {
	Char   string
	Spoken string
}

// Table holds the per-language substitution data used by Process.
type Table struct {
	Abbreviations map[string]string
	Symbols       []Symbol
	Dot           string // spoken form of "." inside URLs
	Slash         string // spoken form of "/" inside URLs
}

var tables = map[string]Table{
	"pt": {
		Abbreviations: abbreviationsPT,
		Symbols:       symbolsPT,
		Dot:           "ponto",
		Slash:         "barra",
	},
	"en": {
		Abbreviations: abbreviationsEN,
		Symbols:       symbolsEN,
		Dot:           "dot",
		Slash:         "slash",
	},
	"es": {
		Abbreviations: abbreviationsES,
		Symbols:       symbolsES,
		Dot:           "punto",
		Slash:         "barra",
	},
}

// ForLanguage returns the substitution table for a two-letter language code,
// falling back to English.
func ForLanguage(lang string) Table {
	if t, ok := tables[lang]; ok {
		return t
	}
	return tables["en"]
}

var abbreviationsPT = map[string]string{
	"tb":      "também",
	"tbm":     "também",
	"tmb":     "também",
	"vc":      "você",
	"vcs":     "vocês",
	"td":      "tudo",
	"pq":      "porque",
	"hj":      "hoje",
	"mt":      "muito",
	"mto":     "muito",
	"qd":      "quando",
	"qdo":     "quando",
	"oq":      "o que",
	"dps":     "depois",
	"vlw":     "valeu",
	"blz":     "beleza",
	"msg":     "mensagem",
	"msgs":    "mensagens",
	"obg":     "obrigado",
	"obgd":    "obrigado",
	"obgda":   "obrigada",
	"cmg":     "comigo",
	"ctg":     "contigo",
	"bjs":     "beijos",
	"abs":     "abraços",
	"qnt":     "quanto",
	"msm":     "mesmo",
	"ngm":     "ninguém",
	"flw":     "falou",
	"pfv":     "por favor",
	"pf":      "por favor",
	"fds":     "fim de semana",
	"nd":      "nada",
	"ctz":     "certeza",
	"rsrs":    "risos",
	"kk":      "risos",
	"kkk":     "risos",
	"kkkk":    "risos",
	"sq":      "só que",
	"sla":     "sei lá",
	"agr":     "agora",
	"dnd":     "de nada",
	"dnv":     "de novo",
	"q":       "que",
	"p":       "para",
	"c":       "com",
	"n":       "não",
	"s":       "sim",
	"eh":      "é",
	"ne":      "né",
	"vdd":     "verdade",
	"add":     "adicionar",
	"ref":     "referência",
	"info":    "informação",
	"infos":   "informações",
	"config":  "configuração",
	"configs": "configurações",
	"app":     "aplicativo",
	"apps":    "aplicativos",
}

var abbreviationsEN = map[string]string{
	"btw":    "by the way",
	"idk":    "I don't know",
	"imo":    "in my opinion",
	"imho":   "in my humble opinion",
	"fyi":    "for your information",
	"tbh":    "to be honest",
	"afaik":  "as far as I know",
	"lol":    "laughing out loud",
	"omg":    "oh my god",
	"brb":    "be right back",
	"ttyl":   "talk to you later",
	"nvm":    "never mind",
	"thx":    "thanks",
	"ty":     "thank you",
	"np":     "no problem",
	"pls":    "please",
	"plz":    "please",
	"rn":     "right now",
	"info":   "information",
	"config": "configuration",
	"app":    "application",
	"apps":   "applications",
	"govt":   "government",
	"dept":   "department",
	"mgmt":   "management",
	"approx": "approximately",
	"misc":   "miscellaneous",
}

var abbreviationsES = map[string]string{
	"tb":   "también",
	"tmb":  "también",
	"xq":   "porque",
	"pq":   "porque",
	"x":    "por",
	"q":    "que",
	"d":    "de",
	"dnd":  "de nada",
	"grax": "gracias",
	"msj":  "mensaje",
	"xfa":  "por favor",
}

var symbolsPT = []Symbol{
	{" - ", " traço "},
	{"#", " cerquilha "},
	{"@", " arroba "},
	{"%", " por cento "},
	{"&", " e comercial "},
	{"=", " igual "},
	{"+", " mais "},
	{"*", " asterisco "},
	{"~", " til "},
	{"^", " circunflexo "},
	{"|", " barra vertical "},
	{"\\", " barra invertida "},
	{"/", " barra "},
	{"<", " menor que "},
	{">", " maior que "},
	{"{", " abre chaves "},
	{"}", " fecha chaves "},
	{"[", " abre colchetes "},
	{"]", " fecha colchetes "},
	{"(", " abre parênteses "},
	{")", " fecha parênteses "},
}

var symbolsEN = []Symbol{
	{" - ", " dash "},
	{"#", " hash "},
	{"@", " at "},
	{"%", " percent "},
	{"&", " ampersand "},
	{"=", " equals "},
	{"+", " plus "},
	{"*", " asterisk "},
	{"~", " tilde "},
	{"^", " caret "},
	{"|", " pipe "},
	{"\\", " backslash "},
	{"/", " slash "},
	{"<", " less than "},
	{">", " greater than "},
	{"{", " open brace "},
	{"}", " close brace "},
	{"[", " open bracket "},
	{"]", " close bracket "},
	{"(", " open paren "},
	{")", " close paren "},
}

var symbolsES = []Symbol{
	{" - ", " guión "},
	{"#", " almohadilla "},
	{"@", " arroba "},
	{"%", " por ciento "},
	{"&", " y comercial "},
	{"/", " barra "},
}
