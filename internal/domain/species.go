package domain

// surveySpecies must match the species names used in the survey workbook
// character for character.
var surveySpecies = []Taxon{
	{"Barn Owl", Green},
	{"Black-headed Gull", Amber},
	{"Blackbird", Green},
	{"Blackcap", Green},
	{"Blue Tit", Green},
	{"Bullfinch", Amber},
	{"Mallard", Amber},
	{"Domestic Mallard", Green},
	{"Buzzard", Green},
	{"Canada Goose", Green},
	{"Carrion Crow", Green},
	{"Cattle Egret", Amber},
	{"Chaffinch", Green},
	{"Chiffchaff", Green},
	{"Coal Tit", Green},
	{"Collared Dove", Green},
	{"Common Crossbill", Green},
	{"Common Gull", Amber},
	{"Coot", Green},
	{"Cormorant", Green},
	{"Cuckoo", Red},
	{"Curlew", Red},
	{"Dunnock", Amber},
	{"Feral Pigeon", Green},
	{"Fieldfare", Red},
	{"Goldcrest", Green},
	{"Goldfinch", Green},
	{"Goshawk", Green},
	{"Great Black-backed Gull", Amber},
	{"Great Spotted Woodpecker", Green},
	{"Great Tit", Amber},
	{"Great White Egret", Green},
	{"Green Sandpiper", Green},
	{"Green Woodpecker", Green},
	{"Greenfinch", Red},
	{"Grey Heron", Green},
	{"Grey Partridge", Red},
	{"Grey Wagtail", Amber},
	{"Greylag Goose", Green},
	{"Hawfinch", Red},
	{"Herring Gull", Red},
	{"Hobby", Green},
	{"House Martin", Red},
	{"House Sparrow", Red},
	{"Jack Snipe", Green},
	{"Jackdaw", Green},
	{"Jay", Green},
	{"Kestrel", Amber},
	{"Kingfisher", Green},
	{"Lapwing", Red},
	{"Lesser Black-backed Gull", Amber},
	{"Lesser Redpoll", Red},
	{"Lesser Whitethroat", Green},
	{"Linnet", Red},
	{"Little Egret", Green},
	{"Little Owl", Green},
	{"Long-tailed Tit", Green},
	{"Magpie", Green},
	{"Mallard duck", Green},
	{"Mandarin duck", Green},
	{"Marsh Tit", Red},
	{"Meadow Pipit", Amber},
	{"Mistle Thrush", Red},
	{"Moorhen", Amber},
	{"Mute Swan", Green},
	{"Nightingale", Red},
	{"Nuthatch", Green},
	{"Partridge,red leg", Green},
	{"Pheasant", Green},
	{"Pied/White Wagtail", Green},
	{"Quail", Amber},
	{"Raven", Green},
	{"Red Kite", Green},
	{"Redstart", Amber},
	{"Redwing", Red},
	{"Reed Bunting", Amber},
	{"Reed Warbler", Green},
	{"Robin", Green},
	{"Rook", Amber},
	{"Sedge Warbler", Amber},
	{"Short-eared Owl", Amber},
	{"Siskin", Green},
	{"Skylark", Red},
	{"Snipe", Amber},
	{"Song Thrush", Red},
	{"Sparrowhawk", Green},
	{"Spotted Flycatcher", Red},
	{"Starling", Red},
	{"Stock Dove", Amber},
	{"Stonechat", Green},
	{"Swallow", Green},
	{"Swift", Red},
	{"Tawny Owl", Amber},
	{"Tree Pipit", Red},
	{"Treecreeper", Green},
	{"Turtle Dove", Red},
	{"Wheatear", Amber},
	{"Whinchat", Red},
	{"Whitethroat", Amber},
	{"Willow warbler", Amber},
	{"Woodpigeon", Amber},
	{"Wren", Amber},
	{"Yellowhammer", Red},
}
