package demo

import "retro-accessories/model"

// accessories is the fixed demo catalog, in display order.
func accessories() []model.Accessory {
	return []model.Accessory{
		{
			ID:          "a1",
			Name:        "Holo Belt Clip",
			Category:    "Carry",
			Price:       19.99,
			Rating:      4.7,
			Description: "A shimmering belt clip that looks straight out of a 1989 catalog. Holds keys, pouches, and good decisions.",
			Accent:      "primary",
		},
		{
			ID:          "a2",
			Name:        "Neon Cable Organizer",
			Category:    "Desk",
			Price:       12.5,
			Rating:      4.4,
			Description: "Tame the spaghetti. Bright neon organizers with satisfying snaps and serious retro vibes.",
			Accent:      "teal",
		},
		{
			ID:          "a3",
			Name:        "Retro Keycap Set",
			Category:    "Input",
			Price:       34.5,
			Rating:      4.9,
			Description: "Chunky, clicky, and wildly nostalgic. Includes the legendary cyan Esc key.",
			Accent:      "primary",
		},
		{
			ID:          "a4",
			Name:        "Synthwave Lanyard",
			Category:    "Wear",
			Price:       9.99,
			Rating:      4.2,
			Description: "Gradient lanyard with a soft-touch strap. Perfect for badges and backstage passes to imaginary concerts.",
			Accent:      "teal",
		},
		{
			ID:          "a5",
			Name:        "Arcade Coin Pouch",
			Category:    "Carry",
			Price:       15.0,
			Rating:      4.3,
			Description: "A zip pouch for coins, earbuds, and tiny treasures. Smells faintly like high scores.",
			Accent:      "primary",
		},
		{
			ID:          "a6",
			Name:        "Glow Sticker Pack",
			Category:    "Decor",
			Price:       6.75,
			Rating:      4.6,
			Description: "Assorted holographic stickers. Adds +2 charisma to laptops and water bottles.",
			Accent:      "teal",
		},
	}
}
