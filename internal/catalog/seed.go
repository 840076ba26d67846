package catalog

import "artvista/models"

const unsplash = "https://images.unsplash.com/"

// SeedArtworks is installed on first run and reconciled into the persisted catalog on
// every later load.
func SeedArtworks() []models.Artwork {
	return []models.Artwork{
		{
			ID:      1,
			Title:   "Ethereal Whispers",
			Artist:  "Elena Vance",
			Price:   99000,
			History: "Inspired by the misty mornings of the Scottish Highlands, this piece explores the thin line between reality and dreams. It represents the transient nature of memory.",
			Medium:  "Oil on Canvas",
			Year:    "2023",
			Image:   unsplash + "photo-1579783902614-a3fb3927b6a5?q=80&w=1000",
			Status:  models.StatusApproved,
		},
		{
			ID:      2,
			Title:   "Vibrant Chaos",
			Artist:  "Julian Thorne",
			Price:   70000,
			History: "A study of urban rhythm and color. Thorne painted this live in the heart of Montmartre, capturing the raw energy of modern street life mixed with classical techniques.",
			Medium:  "Acrylic and Mixed Media",
			Year:    "2024",
			Image:   unsplash + "photo-1541963463532-d68292c34b19?q=80&w=1000",
			Status:  models.StatusApproved,
		},
		{
			ID:      3,
			Title:   "Solitude in Gold",
			Artist:  "Marcus Aurelius",
			Price:   265000,
			History: "A neo-classical masterpiece following the Byzantine tradition of using gold leaf to represent divinity. It reflects the inner peace found in moments of silence.",
			Medium:  "Gold Leaf and Tempura",
			Year:    "2022",
			Image:   unsplash + "photo-1578301978693-85fa9c0320b9?q=80&w=1000",
			Status:  models.StatusApproved,
		},
		{
			ID:      4,
			Title:   "Celestial Dance",
			Artist:  "Aria Sol",
			Price:   125000,
			History: "A cosmic journey through swirls of stardust and nebulae. Aria uses a unique layering technique to create a sense of infinite depth and movement.",
			Medium:  "Acrylic on canvas",
			Year:    "2024",
			Image:   unsplash + "photo-1534796636912-3b95b3ab5986?q=80&w=1000",
			Status:  models.StatusApproved,
		},
		{
			ID:      5,
			Title:   "Rustic Serenity",
			Artist:  "Thomas Miller",
			Price:   45000,
			History: "Capturing the timeless beauty of a countryside sunset. This piece aims to transport the viewer to a place of quiet reflection and natural harmony.",
			Medium:  "Oil on Linen",
			Year:    "2023",
			Image:   unsplash + "photo-1500382017468-9049fed747ef?q=80&w=1000",
			Status:  models.StatusApproved,
		},
		{
			ID:      6,
			Title:   "Inner Reflection",
			Artist:  "Zoe Chen",
			Price:   82000,
			History: "A psychological portrait exploring the layers of the subconscious. Zoe uses reflection and transparency to reveal the hidden complexities of the soul.",
			Medium:  "Mixed media",
			Year:    "2024",
			Image:   unsplash + "photo-1518709268805-4e9042af9f23?q=80&w=1000",
			Status:  models.StatusApproved,
		},
		{
			ID:      7,
			Title:   "Urban Pulse",
			Artist:  "Dexter Volt",
			Price:   58000,
			History: "The electric energy of the modern metropolis at dusk. Neon streaks and blurred figures capture the frantic yet beautiful pace of city life.",
			Medium:  "Digital painting printed on aluminum",
			Year:    "2024",
			Image:   unsplash + "photo-1514565131-fce0801e5785?q=80&w=1000",
			Status:  models.StatusApproved,
		},
		{
			ID:      8,
			Title:   "Verdant Dreams",
			Artist:  "Luna Green",
			Price:   110000,
			History: "A deep dive into the heart of an ancient forest. Luna's masterwork celebrates the raw power and intricate beauty of the natural world.",
			Medium:  "Oil on canvas",
			Year:    "2023",
			Image:   unsplash + "photo-1441974231531-c6227db76b6e?q=80&w=1000",
			Status:  models.StatusApproved,
		},
	}
}

// SeedExhibitions is installed once when no exhibitions have been persisted.
func SeedExhibitions() []models.Exhibition {
	return []models.Exhibition{
		{
			ID:          1,
			Title:       "Modern Echoes",
			Description: "Highlighting contemporary abstract masters.",
			Curator:     "Sarah Jenkins",
		},
	}
}
