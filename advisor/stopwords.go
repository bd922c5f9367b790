package advisor

// defaultStopWords holds uppercase English words that look like ticker symbols
// but never are. Single letters A and I are included so "I" and the article "a"
// never resolve as symbols.
var defaultStopWords = map[string]struct{}{
	"A": {}, "I": {},
	"AM": {}, "AN": {}, "AS": {}, "AT": {}, "BE": {}, "BY": {}, "DO": {},
	"GO": {}, "IF": {}, "IN": {}, "IS": {}, "IT": {}, "ME": {}, "MY": {},
	"NO": {}, "OF": {}, "ON": {}, "OR": {}, "SO": {}, "TO": {}, "UP": {},
	"US": {}, "WE": {},
	"ACT": {}, "ALL": {}, "AND": {}, "ARE": {}, "BOY": {}, "BUT": {},
	"BUY": {}, "CAN": {}, "DAY": {}, "DID": {}, "FOR": {}, "GET": {},
	"HAS": {}, "HER": {}, "HIM": {}, "HIS": {}, "HOW": {}, "ITS": {},
	"KEY": {}, "LAW": {}, "LET": {}, "LOW": {}, "MAN": {}, "MAY": {},
	"NEW": {}, "NOT": {}, "NOW": {}, "OLD": {}, "ONE": {}, "OUR": {},
	"OUT": {}, "PUT": {}, "SAY": {}, "SEC": {}, "SEE": {}, "SHE": {},
	"THE": {}, "TOO": {}, "TWO": {}, "USE": {}, "WAS": {}, "WAY": {},
	"WHO": {}, "WHY": {}, "YOU": {},
	"ALSO": {}, "BACK": {}, "BEEN": {}, "BEST": {}, "BOTH": {},
	"CAME": {}, "COME": {}, "DOES": {}, "DONE": {}, "DOWN": {},
	"EACH": {}, "EVEN": {}, "FIND": {}, "FROM": {}, "GIVE": {},
	"GONE": {}, "GOOD": {}, "HAVE": {}, "HELP": {}, "HIGH": {},
	"HOLD": {}, "INTO": {}, "JUST": {}, "KNOW": {}, "LAST": {},
	"LAWS": {}, "LESS": {}, "LIKE": {}, "LONG": {}, "LOOK": {},
	"MADE": {}, "MAKE": {}, "MANY": {}, "MEAN": {}, "MORE": {},
	"MOST": {}, "MUCH": {}, "NEXT": {}, "NYSE": {}, "ONLY": {},
	"OPEN": {}, "OVER": {}, "RISK": {}, "ROLE": {}, "RULE": {},
	"SAID": {}, "SAME": {}, "SAYS": {}, "SELL": {}, "SOLD": {},
	"SOME": {}, "SUCH": {}, "TAKE": {}, "TELL": {}, "THAN": {},
	"THEM": {}, "THEN": {}, "TIME": {}, "TIPS": {}, "VERY": {},
	"WANT": {}, "WELL": {}, "WHAT": {}, "WHEN": {}, "WILL": {},
	"WITH": {}, "WORK": {}, "YEAR": {},
	"ABOUT": {}, "BASIC": {}, "BEING": {}, "CLOSE": {}, "COULD": {},
	"DIFFER": {}, "DOING": {}, "FIRST": {}, "GOING": {}, "HELPS": {},
	"IDEAS": {}, "LEARN": {}, "MAJOR": {}, "MEANS": {}, "MINOR": {},
	"OTHER": {}, "PENNY": {}, "PRICE": {}, "QUICK": {}, "RISKS": {},
	"SHARE": {}, "SHOULD": {}, "START": {}, "STOCK": {}, "THESE": {},
	"THINK": {}, "THOSE": {}, "TRADE": {}, "UNDER": {}, "VALUE": {},
	"WATCH": {}, "WHERE": {}, "WHICH": {}, "WORKS": {}, "WOULD": {},
	"YEARS":  {},
	"BOUGHT": {}, "GROWTH": {}, "INVEST": {}, "STOCKS": {},
	"DIFFERS": {}, "TRADING": {}, "INVESTING": {}, "DIFFERENCE": {},
}
