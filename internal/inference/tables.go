package inference

// Lookup tables are built once at init and never mutated.

var maleFirstNames = newSet(
	"john", "michael", "david", "james", "robert", "william", "richard", "charles",
	"joseph", "thomas", "christopher", "daniel", "paul", "mark", "donald", "steven",
	"kenneth", "andrew", "joshua", "kevin", "brian", "george", "edward", "ronald",
	"timothy", "jason", "jeffrey", "ryan", "jacob", "gary", "nicholas", "eric",
	"jonathan", "stephen", "larry", "justin", "scott", "brandon", "benjamin", "samuel",
	"gregory", "alexander", "patrick", "frank", "raymond", "jack", "dennis", "jerry",
	"tyler", "aaron", "jose", "henry", "adam", "douglas", "nathan", "peter",
	"zachary", "kyle", "noah", "alan", "ethan", "jeremy", "lionel", "mike",
	"carl", "wayne", "ralph", "roy", "eugene", "louis", "philip", "bobby",
)

var femaleFirstNames = newSet(
	"mary", "patricia", "jennifer", "linda", "elizabeth", "barbara", "susan", "jessica",
	"sarah", "karen", "nancy", "lisa", "betty", "helen", "sandra", "donna",
	"carol", "ruth", "sharon", "michelle", "laura", "kimberly", "deborah", "dorothy",
	"amy", "angela", "ashley", "brenda", "emma", "olivia", "cynthia", "marie",
	"janet", "catherine", "frances", "christine", "samantha", "debra", "rachel", "carolyn",
	"virginia", "maria", "heather", "diane", "julie", "joyce", "victoria", "kelly",
	"christina", "joan", "evelyn", "lauren", "judith", "megan", "cheryl", "andrea",
	"hannah", "jacqueline", "martha", "gloria", "teresa", "sara", "janice", "julia",
)

// Surname tables may overlap; surnameTables fixes the check order.
var hispanicSurnames = newSet(
	"garcia", "rodriguez", "martinez", "hernandez", "lopez", "gonzalez", "wilson", "perez",
	"sanchez", "ramirez", "torres", "flores", "rivera", "gomez", "diaz", "reyes",
	"morales", "ortiz", "gutierrez", "chavez", "ramos", "castillo", "mendoza", "vargas",
	"alvarez", "jimenez", "romero", "vasquez", "herrera", "medina", "castro", "ruiz",
)

var blackSurnames = newSet(
	"washington", "jefferson", "jackson", "johnson", "williams", "brown", "jones", "davis",
	"miller", "wilson", "moore", "taylor", "anderson", "thomas", "harris", "martin",
	"thompson", "white", "lewis", "walker", "hall", "allen", "young", "king",
	"wright", "scott", "green", "baker", "adams", "nelson", "hill", "ramirez",
	"campbell", "mitchell", "roberts", "carter", "phillips", "evans", "turner", "torres",
	"parker", "collins", "edwards", "stewart", "flores", "morris", "nguyen", "murphy",
	"rivera", "cook", "rogers", "morgan", "peterson", "cooper", "reed", "bailey",
	"bell", "gomez", "kelly", "howard", "ward", "cox", "diaz", "richardson",
	"wood", "watson", "brooks", "bennett", "gray", "james", "reyes", "cruz",
	"hughes", "price", "myers", "long", "foster", "sanders", "ross", "morales",
	"powell", "sullivan", "russell", "ortiz", "jenkins", "gutierrez", "perry", "butler",
	"barnes", "fisher",
)

var asianSurnames = newSet(
	"li", "wang", "zhang", "liu", "chen", "yang", "huang", "zhao",
	"wu", "zhou", "xu", "sun", "ma", "zhu", "hu", "guo",
	"he", "gao", "lin", "luo", "zheng", "liang", "xie", "song",
	"tang", "deng", "feng", "yu", "dong", "xiao", "cheng", "han",
	"zeng", "peng", "cao", "dai", "wei", "xue", "du", "ren",
	"shen", "lv", "jiang", "lu", "gu", "meng", "qin", "shao",
	"wan", "hou", "yin", "qiu", "jin", "tan", "kim", "park",
	"lee", "choi", "jung", "kang", "cho", "yoon", "jang", "lim",
	"oh", "seo", "shin", "kwon", "hwang", "ahn", "nakamura", "tanaka",
	"suzuki", "watanabe", "ito", "yamamoto", "takahashi", "kobayashi", "sato", "sasaki",
	"yamada", "yamazaki", "mori", "abe", "ikeda", "hashimoto", "yamashita", "ishikawa",
	"nakajima", "maeda", "ogawa", "takeuchi", "nguyen", "tran", "le", "pham",
	"hoang", "phan", "vu", "vo", "dang", "bui", "do", "ho",
	"ngo", "duong", "ly",
)

// agenticWords are terms associated with male-coded resume language
var agenticWords = []string{
	"achieved", "accomplished", "delivered", "executed", "led", "managed", "directed", "drove",
	"spearheaded", "pioneered", "dominated", "conquered", "won", "beat", "outperformed", "exceeded",
	"surpassed", "competitive", "aggressive", "assertive", "confident", "independent", "ambitious", "decisive",
}

// communalWords are terms associated with female-coded resume language
var communalWords = []string{
	"collaborated", "supported", "helped", "assisted", "coordinated", "facilitated", "contributed", "participated",
	"cooperated", "mentored", "guided", "nurtured", "caring", "empathetic", "understanding", "patient",
	"thoughtful", "considerate", "helpful", "supportive", "collaborative", "team-oriented", "inclusive",
}

type wordSet map[string]struct{}

func newSet(words ...string) wordSet {
	s := make(wordSet, len(words))
	for _, w := range words {
		s[w] = struct{}{}
	}
	return s
}

func (s wordSet) contains(word string) bool {
	_, ok := s[word]
	return ok
}
