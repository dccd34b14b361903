package film

import "strings"

// CatalogEntry is a film from the curated public catalog. The catalog is
// the browsing source; entries are persisted to the films table only once
// the community interacts with them.
type CatalogEntry struct {
	TMDBID      int64    `json:"tmdb_id"`
	Title       string   `json:"title"`
	Synopsis    string   `json:"synopsis"`
	ReleaseDate string   `json:"release_date"`
	Runtime     int      `json:"runtime"`
	PosterURL   string   `json:"poster_url"`
	Genres      []string `json:"genres"`
	Director    string   `json:"director"`
	Cast        []string `json:"cast"`
}

var catalog = []CatalogEntry{
	{
		TMDBID:      27205,
		Title:       "Inception",
		Synopsis:    "A thief who steals corporate secrets through dream-sharing technology is given the inverse task of planting an idea into the mind of a C.E.O.",
		ReleaseDate: "2010-07-16",
		Runtime:     148,
		PosterURL:   "https://image.tmdb.org/t/p/w500/oYuLEt3zVCKq57qu2F8dT7NIa6f.jpg",
		Genres:      []string{"Science Fiction", "Action", "Thriller"},
		Director:    "Christopher Nolan",
		Cast:        []string{"Leonardo DiCaprio", "Joseph Gordon-Levitt", "Elliot Page", "Marion Cotillard"},
	},
	{
		TMDBID:      155,
		Title:       "The Dark Knight",
		Synopsis:    "Batman raises the stakes in his war on crime and faces the Joker, a criminal mastermind bent on plunging Gotham into anarchy.",
		ReleaseDate: "2008-07-18",
		Runtime:     152,
		PosterURL:   "https://image.tmdb.org/t/p/w500/qJ2tW6WMUDux911r6m7haRef0WH.jpg",
		Genres:      []string{"Action", "Crime", "Drama"},
		Director:    "Christopher Nolan",
		Cast:        []string{"Christian Bale", "Heath Ledger", "Aaron Eckhart", "Gary Oldman"},
	},
	{
		TMDBID:      680,
		Title:       "Pulp Fiction",
		Synopsis:    "The lives of two mob hitmen, a boxer, a gangster and his wife intertwine in four tales of violence and redemption.",
		ReleaseDate: "1994-10-14",
		Runtime:     154,
		PosterURL:   "https://image.tmdb.org/t/p/w500/d5iIlFn5s0ImszYzBPb8JPIfbXD.jpg",
		Genres:      []string{"Thriller", "Crime"},
		Director:    "Quentin Tarantino",
		Cast:        []string{"John Travolta", "Samuel L. Jackson", "Uma Thurman", "Bruce Willis"},
	},
	{
		TMDBID:      129,
		Title:       "Spirited Away",
		Synopsis:    "A young girl wanders into a world ruled by gods and witches, where humans are changed into beasts, and must work to free herself and her parents.",
		ReleaseDate: "2001-07-20",
		Runtime:     125,
		PosterURL:   "https://image.tmdb.org/t/p/w500/39wmItIWsg5sZMyRUHLkWBcuVCM.jpg",
		Genres:      []string{"Animation", "Family", "Fantasy"},
		Director:    "Hayao Miyazaki",
		Cast:        []string{"Rumi Hiiragi", "Miyu Irino", "Mari Natsuki"},
	},
	{
		TMDBID:      550,
		Title:       "Fight Club",
		Synopsis:    "An insomniac office worker and a devil-may-care soap maker form an underground fight club that evolves into much more.",
		ReleaseDate: "1999-10-15",
		Runtime:     139,
		PosterURL:   "https://image.tmdb.org/t/p/w500/pB8BM7pdSp6B6Ih7QZ4DrQ3PmJK.jpg",
		Genres:      []string{"Drama"},
		Director:    "David Fincher",
		Cast:        []string{"Edward Norton", "Brad Pitt", "Helena Bonham Carter"},
	},
	{
		TMDBID:      496243,
		Title:       "Parasite",
		Synopsis:    "All unemployed, Ki-taek's family takes peculiar interest in the wealthy Park family, infiltrating their household one by one.",
		ReleaseDate: "2019-05-30",
		Runtime:     132,
		PosterURL:   "https://image.tmdb.org/t/p/w500/7IiTTgloJzvGI1TAYymCfbfl3vT.jpg",
		Genres:      []string{"Comedy", "Thriller", "Drama"},
		Director:    "Bong Joon-ho",
		Cast:        []string{"Song Kang-ho", "Lee Sun-kyun", "Cho Yeo-jeong", "Choi Woo-shik"},
	},
	{
		TMDBID:      603,
		Title:       "The Matrix",
		Synopsis:    "A hacker learns the shocking truth about reality and his role in the war against its controllers.",
		ReleaseDate: "1999-03-31",
		Runtime:     136,
		PosterURL:   "https://image.tmdb.org/t/p/w500/f89U3ADr1oiB1s9GkdPOEpXUk5H.jpg",
		Genres:      []string{"Action", "Science Fiction"},
		Director:    "Lana Wachowski",
		Cast:        []string{"Keanu Reeves", "Laurence Fishburne", "Carrie-Anne Moss"},
	},
	{
		TMDBID:      194,
		Title:       "Amélie",
		Synopsis:    "A shy waitress in Montmartre decides to change the lives of those around her for the better, while struggling with her own isolation.",
		ReleaseDate: "2001-04-25",
		Runtime:     122,
		PosterURL:   "https://image.tmdb.org/t/p/w500/nSxDa3M9aMvGVLoItzWTepQ5h5d.jpg",
		Genres:      []string{"Comedy", "Romance"},
		Director:    "Jean-Pierre Jeunet",
		Cast:        []string{"Audrey Tautou", "Mathieu Kassovitz"},
	},
	{
		TMDBID:      238,
		Title:       "The Godfather",
		Synopsis:    "The aging patriarch of an organized crime dynasty transfers control of his clandestine empire to his reluctant son.",
		ReleaseDate: "1972-03-24",
		Runtime:     175,
		PosterURL:   "https://image.tmdb.org/t/p/w500/3bhkrj58Vtu7enYsRolD1fZdja1.jpg",
		Genres:      []string{"Drama", "Crime"},
		Director:    "Francis Ford Coppola",
		Cast:        []string{"Marlon Brando", "Al Pacino", "James Caan"},
	},
	{
		TMDBID:      157336,
		Title:       "Interstellar",
		Synopsis:    "A team of explorers travel through a wormhole in space in an attempt to ensure humanity's survival.",
		ReleaseDate: "2014-11-07",
		Runtime:     169,
		PosterURL:   "https://image.tmdb.org/t/p/w500/gEU2QniE6E77NI6lCU6MxlNBvIx.jpg",
		Genres:      []string{"Adventure", "Drama", "Science Fiction"},
		Director:    "Christopher Nolan",
		Cast:        []string{"Matthew McConaughey", "Anne Hathaway", "Jessica Chastain"},
	},
	{
		TMDBID:      4935,
		Title:       "Howl's Moving Castle",
		Synopsis:    "A young woman cursed with an old body joins a wizard in his walking castle as war looms over their kingdom.",
		ReleaseDate: "2004-11-20",
		Runtime:     119,
		PosterURL:   "https://image.tmdb.org/t/p/w500/TkTPELv4kC3u1lkloush8skOjE.jpg",
		Genres:      []string{"Fantasy", "Animation", "Adventure"},
		Director:    "Hayao Miyazaki",
		Cast:        []string{"Chieko Baisho", "Takuya Kimura"},
	},
	{
		TMDBID:      324857,
		Title:       "Spider-Man: Into the Spider-Verse",
		Synopsis:    "Teen Miles Morales becomes Spider-Man and must join other Spider-People from across dimensions to stop a threat to all realities.",
		ReleaseDate: "2018-12-14",
		Runtime:     117,
		PosterURL:   "https://image.tmdb.org/t/p/w500/iiZZdoQBEYBv6id8su7ImL0oCbD.jpg",
		Genres:      []string{"Animation", "Action", "Adventure"},
		Director:    "Bob Persichetti",
		Cast:        []string{"Shameik Moore", "Jake Johnson", "Hailee Steinfeld"},
	},
}

// Catalog returns the full public catalog
func Catalog() []CatalogEntry {
	return catalog
}

// CatalogEntryByTMDBID looks up a catalog entry
func CatalogEntryByTMDBID(tmdbID int64) (CatalogEntry, bool) {
	for _, e := range catalog {
		if e.TMDBID == tmdbID {
			return e, true
		}
	}
	return CatalogEntry{}, false
}

// SearchCatalog returns entries whose title contains the query, case-insensitive
func SearchCatalog(query string) []CatalogEntry {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	var out []CatalogEntry
	for _, e := range catalog {
		if strings.Contains(strings.ToLower(e.Title), q) {
			out = append(out, e)
		}
	}
	return out
}
