package catalog

// DefaultArticles returns the articles published on the site.
func DefaultArticles() []Article {
	return []Article{
		{
			ID:          1,
			Category:    "Product",
			Title:       "Il fallimento come feature, non come bug",
			Excerpt:     "Ho sprecato 3 mesi su un contratto di 50 pagine che nessuno ha mai letto. Oggi uso un accordo di 2 pagine e funziona meglio. Ecco perché il fallimento è la migliore forma di apprendimento.",
			ReadingTime: "8 min",
			Date:        "5 Nov 2025",
			Color:       "#FF006E",
			Featured:    true,
			Body:        failureAsFeatureBody,
		},
		{
			ID:          2,
			Category:    "Strategy",
			Title:       "Product-Market Fit: Il mito da sfatare",
			Excerpt:     `Non esiste un momento magico dove "trovi" il PMF. È un processo continuo di aggiustamenti.`,
			ReadingTime: "6 min",
			Date:        "28 Ott 2025",
			Color:       "#7209B7",
		},
		{
			ID:          3,
			Category:    "OKRs",
			Title:       "OKR che funzionano vs OKR che sembrano fighi",
			Excerpt:     "La differenza tra OKR che portano risultati e quelli che finiscono in un Google Doc dimenticato.",
			ReadingTime: "7 min",
			Date:        "15 Ott 2025",
			Color:       "#0D7EFF",
		},
		{
			ID:          4,
			Category:    "Design",
			Title:       "Design Systems: Quando il sistema ti blocca invece di aiutarti",
			Excerpt:     "Ho costruito un design system perfetto che nessuno usava. Poi ho capito che la perfezione è nemica della praticità.",
			ReadingTime: "10 min",
			Date:        "2 Ott 2025",
			Color:       "#0D7EFF",
		},
		{
			ID:          5,
			Category:    "Product",
			Title:       "User Research che mente (e come smascherarla)",
			Excerpt:     "Gli utenti dicono una cosa e ne fanno un'altra. Ho imparato a leggere tra le righe delle interviste.",
			ReadingTime: "9 min",
			Date:        "18 Set 2025",
			Color:       "#FF006E",
		},
		{
			ID:          6,
			Category:    "Development",
			Title:       "Code Review che migliorano il team (non solo il codice)",
			Excerpt:     "Le migliori code review che ho fatto non riguardavano il codice, ma la cultura del team.",
			ReadingTime: "7 min",
			Date:        "5 Set 2025",
			Color:       "#FFD60A",
		},
		{
			ID:          7,
			Category:    "Strategy",
			Title:       "Roadmap Agile: L'ossimoro che funziona",
			Excerpt:     "Come pianificare senza essere rigidi e rimanere agili senza essere caotici.",
			ReadingTime: "11 min",
			Date:        "22 Ago 2025",
			Color:       "#7209B7",
		},
		{
			ID:          8,
			Category:    "Leadership",
			Title:       "Il PM non è il capo: è il facilitatore",
			Excerpt:     "Ho smesso di dare ordini e ho iniziato a fare domande. Il team è diventato 3x più produttivo.",
			ReadingTime: "6 min",
			Date:        "8 Ago 2025",
			Color:       "#FF006E",
		},
		{
			ID:          9,
			Category:    "Design",
			Title:       "Atomic Design per chi odia la teoria",
			Excerpt:     "Atomic Design spiegato con esempi pratici e zero gergo tecnico. Spoiler: funziona davvero.",
			ReadingTime: "12 min",
			Date:        "25 Lug 2025",
			Color:       "#0D7EFF",
		},
		{
			ID:          10,
			Category:    "OKRs",
			Title:       "OKR trimestrali vs annuali: cosa ho imparato",
			Excerpt:     "Un anno è troppo lungo, una settimana troppo corta. Il trimestre è il sweet spot.",
			ReadingTime: "8 min",
			Date:        "11 Lug 2025",
			Color:       "#0D7EFF",
		},
		{
			ID:          11,
			Category:    "Product",
			Title:       "Feature Flags: Il superpotere nascosto del PM",
			Excerpt:     "Come ho rilasciato 15 feature in un giorno senza rompere nulla (e senza stress).",
			ReadingTime: "9 min",
			Date:        "28 Giu 2025",
			Color:       "#FF006E",
		},
		{
			ID:          12,
			Category:    "Development",
			Title:       "Da Developer a PM: Le skill che contano davvero",
			Excerpt:     "Non è il codice che ti rende un buon PM. È capire perché lo stai scrivendo.",
			ReadingTime: "10 min",
			Date:        "14 Giu 2025",
			Color:       "#FFD60A",
		},
	}
}

const failureAsFeatureBody = `## Introduzione

Tre mesi. Tanto ci ho messo a scrivere un contratto di collaborazione di 50 pagine che nessuno ha mai letto fino in fondo.

## Il problema

Volevo prevedere ogni scenario prima di iniziare a lavorare.

### Il contesto

Un cliente nuovo, un progetto ambizioso e la paura di sbagliare il primo passo.

### Le sfide

Ogni clausola aggiunta generava due nuove domande. Il lavoro vero non partiva mai.

## La soluzione

Oggi uso un accordo di 2 pagine: obiettivi, tempi, come ci parliamo quando qualcosa va storto.

### Approccio

Partire piccoli, fissare un primo checkpoint dopo due settimane, correggere la rotta insieme.

### Implementazione

Un documento condiviso, una call di 30 minuti ogni venerdì, una sola metrica di successo.

## Risultati

Progetti avviati in giorni invece che mesi, e meno incomprensioni di prima.

## Lezioni apprese

Il fallimento non è un bug da eliminare: è il modo più rapido per capire cosa funziona.

## Conclusione

Se un processo ti protegge da ogni errore, probabilmente ti protegge anche da ogni apprendimento.
`
