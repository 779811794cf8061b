package genre

// keywords expands a search genre into lowercase substrings used for permissive matching.
var keywords = map[string][]string{
	"drum and bass": {"drum", "bass", "dnb", "d&b", "jungle", "liquid", "neurofunk"},
	"dnb":           {"drum", "bass", "dnb", "d&b", "jungle"},
	"d&b":           {"drum", "bass", "dnb", "d&b", "jungle"},
	"house":         {"house", "deep house", "tech house", "progressive house", "electro house", "deep", "progressive"},
	"techno":        {"techno", "minimal", "tech house", "detroit", "industrial", "tech"},
	"electronic":    {"electronic", "edm", "dance", "electro", "synth", "digital", "club"},
	"edm":           {"edm", "electronic", "dance", "festival", "rave", "club"},
	"trance":        {"trance", "progressive", "uplifting", "psytrance", "vocal trance", "psy"},
	"dubstep":       {"dubstep", "bass", "wobble", "brostep", "riddim"},
	"hip hop":       {"hip hop", "rap", "hiphop", "hip-hop", "mc", "freestyle"},
	"rap":           {"rap", "hip hop", "hiphop", "freestyle", "battle"},
	"rock":          {"rock", "alternative", "indie rock", "hard rock", "classic rock"},
	"indie":         {"indie", "independent", "alternative", "underground"},
	"pop":           {"pop", "mainstream", "chart", "radio"},
	"jazz":          {"jazz", "smooth", "fusion", "bebop", "swing"},
	"blues":         {"blues", "rhythm", "delta", "chicago"},
	"country":       {"country", "americana", "folk", "bluegrass", "western"},
	"metal":         {"metal", "heavy", "death", "black", "thrash", "doom"},
	"punk":          {"punk", "hardcore", "ska", "emo", "post-punk"},
	"reggae":        {"reggae", "ska", "dub", "dancehall", "roots"},
	"classical":     {"classical", "orchestra", "symphony", "chamber", "opera"},
	"folk":          {"folk", "acoustic", "singer-songwriter", "traditional"},
	"ambient":       {"ambient", "experimental", "drone", "soundscape"},
	"minimal":       {"minimal", "minimalist", "repetitive"},
	"disco":         {"disco", "funk", "nu-disco"},
	"breaks":        {"breaks", "breakbeat", "nu breaks"},
}

// defaultSynonyms groups genre names that score as related. The lookup is
// checked in both directions from the group key only.
var defaultSynonyms = map[string][]string{
	"drum and bass": {"dnb", "d&b", "drum & bass", "jungle"},
	"electronic":    {"edm", "dance", "house", "techno", "trance"},
	"hip hop":       {"rap", "hip-hop", "hiphop"},
	"rock":          {"alternative", "indie rock", "punk"},
}

// Ticketmaster Discovery API segment/genre classification ids.
const (
	tmElectronic = "KnvZfZ7vAvv"
	tmRock       = "KnvZfZ7vAeA"
	tmHipHop     = "KnvZfZ7vAv1"
	tmPop        = "KnvZfZ7vAev"
	tmJazz       = "KnvZfZ7vAvE"
	tmCountry    = "KnvZfZ7vAv6"
)

var classifications = map[string]string{
	"drum and bass": tmElectronic,
	"drum & bass":   tmElectronic,
	"dnb":           tmElectronic,
	"electronic":    tmElectronic,
	"house":         tmElectronic,
	"techno":        tmElectronic,
	"trance":        tmElectronic,
	"edm":           tmElectronic,
	"rock":          tmRock,
	"alternative":   tmRock,
	"indie":         tmRock,
	"punk":          tmRock,
	"hip hop":       tmHipHop,
	"rap":           tmHipHop,
	"hip-hop":       tmHipHop,
	"pop":           tmPop,
	"jazz":          tmJazz,
	"country":       tmCountry,
}

// queryExpansions are boolean search strings understood by Eventbrite's q parameter.
var queryExpansions = map[string]string{
	"drum and bass": `drum and bass OR dnb OR "d&b" OR jungle OR liquid`,
	"dnb":           `drum and bass OR dnb OR "d&b" OR jungle`,
	"d&b":           `drum and bass OR dnb OR "d&b" OR jungle`,
	"house":         `house music OR "deep house" OR "tech house" OR "progressive house"`,
	"techno":        `techno OR "electronic music" OR "tech house"`,
	"electronic":    `electronic music OR EDM OR "dance music" OR electro`,
	"edm":           `EDM OR "electronic dance music" OR festival OR rave`,
	"trance":        `trance OR "progressive trance" OR "uplifting trance"`,
	"dubstep":       `dubstep OR bass music OR "electronic music"`,
	"hip hop":       `hip hop OR rap OR "hip-hop" OR hiphop`,
	"rap":           `rap OR hip hop OR "hip-hop"`,
	"rock":          `rock music OR "alternative rock" OR "indie rock"`,
	"indie":         `indie music OR independent OR alternative`,
	"pop":           `pop music OR mainstream OR "popular music"`,
	"jazz":          `jazz music OR "smooth jazz" OR "jazz fusion"`,
	"blues":         `blues music OR "rhythm and blues"`,
	"country":       `country music OR americana OR folk`,
	"metal":         `metal music OR "heavy metal" OR "death metal"`,
	"punk":          `punk music OR "punk rock" OR hardcore`,
	"reggae":        `reggae music OR ska OR dub`,
	"classical":     `classical music OR orchestra OR symphony`,
	"folk":          `folk music OR acoustic OR singer-songwriter`,
	"ambient":       `ambient music OR "electronic music" OR experimental`,
	"minimal":       `minimal techno OR minimal music OR electronic`,
}

// rosters are curated touring artists per genre, for sources that only search by artist.
var rosters = map[string][]string{
	"drum and bass": {"Netsky", "LTJ Bukem", "Goldie", "Roni Size", "Andy C", "High Contrast", "Calibre", "Matrix & Futurebound", "Sub Focus"},
	"dnb":           {"Netsky", "Andy C", "Sub Focus", "High Contrast"},
	"d&b":           {"Netsky", "Andy C", "Sub Focus", "High Contrast"},
	"house":         {"Calvin Harris", "David Guetta", "Disclosure", "Duke Dumont", "Armand Van Helden", "Mark Knight", "Pete Tong", "Kerri Chandler"},
	"techno":        {"Carl Cox", "Adam Beyer", "Charlotte de Witte", "Amelie Lens", "Nina Kraviz", "Richie Hawtin", "Jeff Mills", "Ben Klock"},
	"electronic":    {"Deadmau5", "Skrillex", "Calvin Harris", "David Guetta", "The Chemical Brothers", "Daft Punk", "Justice", "Disclosure"},
	"edm":           {"Calvin Harris", "David Guetta", "Skrillex", "Deadmau5", "Martin Garrix", "Tiesto", "Armin van Buuren", "Steve Aoki"},
	"trance":        {"Armin van Buuren", "Paul van Dyk", "Tiesto", "Above & Beyond", "Aly & Fila", "Ferry Corsten", "Markus Schulz", "Gareth Emery"},
	"dubstep":       {"Skrillex", "Zomboy", "Flux Pavilion", "Modestep", "Nero", "Rusko", "Caspa", "Borgore"},
	"hip hop":       {"Drake", "Kendrick Lamar", "J. Cole", "Travis Scott", "Post Malone", "Lil Wayne", "Eminem", "Kanye West"},
	"rap":           {"Drake", "Kendrick Lamar", "J. Cole", "Travis Scott", "A$AP Rocky", "Tyler, The Creator", "Childish Gambino"},
	"rock":          {"Foo Fighters", "Arctic Monkeys", "The Strokes", "Kings of Leon", "Royal Blood", "Muse", "Queens of the Stone Age", "Pearl Jam"},
	"indie":         {"Arctic Monkeys", "The Strokes", "Vampire Weekend", "Tame Impala", "Foster the People", "Two Door Cinema Club", "The 1975"},
	"pop":           {"Taylor Swift", "Ed Sheeran", "Dua Lipa", "The Weeknd", "Billie Eilish", "Harry Styles", "Olivia Rodrigo"},
	"jazz":          {"Kamasi Washington", "Robert Glasper", "Esperanza Spalding", "Brad Mehldau", "GoGo Penguin", "Snarky Puppy"},
	"metal":         {"Metallica", "Iron Maiden", "Black Sabbath", "Slayer", "Megadeth", "Judas Priest", "Tool", "System of a Down"},
}

// artistHints maps a lowercase artist name fragment to a display genre.
// Checked in slice order so results are deterministic.
var artistHints = []struct {
	fragment string
	genre    string
}{
	{"netsky", "Drum & Bass"},
	{"calvin harris", "House"},
	{"skrillex", "Dubstep"},
	{"carl cox", "Techno"},
	{"armin van buuren", "Trance"},
	{"drake", "Hip Hop"},
	{"arctic monkeys", "Indie Rock"},
	{"foo fighters", "Rock"},
}
