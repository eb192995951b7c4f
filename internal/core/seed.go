package core

import "github.com/shopspring/decimal"

type seedRow struct {
	id, name, category, price string
}

// seedRows is the bar's standard catalog with last known purchase prices.
var seedRows = []seedRow{
	{"a1", "Absolut", "🧊 Vodka", "11.45"},
	{"a2", "Beluga", "🧊 Vodka", "28.85"},
	{"a3", "Belvedere", "🧊 Vodka", "29.46"},
	{"a4", "Grey Goose", "🧊 Vodka", "36.89"},
	{"a5", "Vozca Negro", "🧊 Vodka", "0"},
	{"a6", "Bacardi 8", "🥥 Ron", "22.02"},
	{"a7", "Bacardi Carta Blanca 1Lt", "🥥 Ron", "13.55"},
	{"a8", "Bumbu Original", "🥥 Ron", "27.12"},
	{"a9", "Brugal", "🥥 Ron", "0"},
	{"a10", "Havana Club", "🥥 Ron", "19.22"},
	{"a11", "Malibu", "🥥 Ron", "10.77"},
	{"a12", "Sta Teresa Gran Reserva", "🥥 Ron", "11.51"},
	{"a13", "Sta Teresa 1796", "🥥 Ron", "36.39"},
	{"a14", "Zacapa 23", "🥥 Ron", "48.77"},
	{"a15", "Zacapa XO", "🥥 Ron", "116.86"},
	{"a16", "Ballantines", "🥃 Whisky / Bourbon", "13.7"},
	{"a17", "Ballantines 10", "🥃 Whisky / Bourbon", "15.88"},
	{"a18", "Bullet", "🥃 Whisky / Bourbon", "23.07"},
	{"a19", "Chivas 12", "🥃 Whisky / Bourbon", "22.91"},
	{"a20", "Chivas 15", "🥃 Whisky / Bourbon", "38.83"},
	{"a21", "Carlos I", "🥃 Whisky / Bourbon", "19.78"},
	{"a22", "Dewars Whait label", "🥃 Whisky / Bourbon", "0"},
	{"a23", "Four Roses", "🥃 Whisky / Bourbon", "14.53"},
	{"a24", "Hennesy", "🥃 Whisky / Bourbon", "27.78"},
	{"a25", "JB", "🥃 Whisky / Bourbon", "9.82"},
	{"a26", "J. Walker Black Label", "🥃 Whisky / Bourbon", "0"},
	{"a27", "J. Walker Gold Label Reserve", "🥃 Whisky / Bourbon", "39.29"},
	{"a28", "J. Walker White", "🥃 Whisky / Bourbon", "0"},
	{"a29", "J.Walcker E.Black 0.7 Luxe", "🥃 Whisky / Bourbon", "21.94"},
	{"a30", "Jack Daniel’s", "🥃 Whisky / Bourbon", "17.33"},
	{"a31", "Jameson", "🥃 Whisky / Bourbon", "14.94"},
	{"a32", "Lagavulin", "🥃 Whisky / Bourbon", "78.62"},
	{"a33", "Macallan 12 años double cask", "🥃 Whisky / Bourbon", "65.44"},
	{"a34", "Torres 10", "🥃 Whisky / Bourbon", "10.49"},
	{"a35", "Beefeater", "🍸 Ginebra", "11.97"},
	{"a36", "Beefeater 0%", "🍸 Ginebra", "11.81"},
	{"a37", "Beefeater Black", "🍸 Ginebra", "14.5"},
	{"a38", "Beefeater Pink", "🍸 Ginebra", "12.72"},
	{"a39", "Beefeater Pink 20%", "🍸 Ginebra", "0"},
	{"a40", "Beefeater Pink Premium", "🍸 Ginebra", "0"},
	{"a41", "Bombay Saphire", "🍸 Ginebra", "14.59"},
	{"a42", "G’Vine", "🍸 Ginebra", "30.43"},
	{"a43", "Gin Mare", "🍸 Ginebra", "25.49"},
	{"a44", "Hendricks", "🍸 Ginebra", "23.55"},
	{"a45", "Malfy Limón", "🍸 Ginebra", "20.92"},
	{"a46", "Monkey 47", "🍸 Ginebra", "34.1"},
	{"a47", "Seagrams", "🍸 Ginebra", "13.18"},
	{"a48", "Seagrams 0%", "🍸 Ginebra", "13.6"},
	{"a49", "Tanqueray Ten", "🍸 Ginebra", "28.16"},
	{"a50", "Cazadores", "🌵 Tequila", "0"},
	{"a51", "Código Blanco", "🌵 Tequila", "46.21"},
	{"a52", "Código Reposado", "🌵 Tequila", "53.93"},
	{"a53", "Código Rosa", "🌵 Tequila", "52.77"},
	{"a54", "Jose Cuervo (tequila)", "🌵 Tequila", "0"},
	{"a55", "Patrón Reposado", "🌵 Tequila", "0"},
	{"a56", "Patrón Silver", "🌵 Tequila", "39.36"},
	{"a57", "Tequila Clase Azul Reposado", "🌵 Tequila", "149.41"},
	{"a58", "Tequila Don Julio 1942", "🌵 Tequila", "175.71"},
	{"a59", "Tequila Don Julio Blanco", "🌵 Tequila", "40.2"},
	{"a60", "Tequila Don Julio Reposado 0.7", "🌵 Tequila", "44.19"},
	{"a61", "Tequila Olmeca", "🌵 Tequila", "19.37"},
	{"a62", "Tequifresi", "🌵 Tequila", "0"},
	{"a63", "Mezcal Bhanes", "🔥 Mezcal", "32.12"},
	{"a64", "Mezcal Joven Casamigos", "🔥 Mezcal", "42.5"},
	{"a65", "Sarajishviu", "🔥 Mezcal", "0"},
	{"a66", "Aperitivo (Petroni)", "🍯 Licores y Aperitivos", "11.13"},
	{"a67", "Aperol", "🍯 Licores y Aperitivos", "10.24"},
	{"a68", "Baileys 1 Lt", "🍯 Licores y Aperitivos", "14.92"},
	{"a69", "Blue Coraçao", "🍯 Licores y Aperitivos", "0"},
	{"a70", "Cachaça (Vhelo Barreiro)", "🍯 Licores y Aperitivos", "11.16"},
	{"a71", "Campari", "🍯 Licores y Aperitivos", "9.82"},
	{"a72", "Caiman Love Almendras", "🍯 Licores y Aperitivos", "0"},
	{"a73", "Cointreau", "🍯 Licores y Aperitivos", "14.75"},
	{"a74", "Cordial de Lima (Caiman)", "🍯 Licores y Aperitivos", "2.45"},
	{"a75", "Cordial de Grosella (Caiman)", "🍯 Licores y Aperitivos", "0"},
	{"a76", "Disaronno", "🍯 Licores y Aperitivos", "12.34"},
	{"a77", "Fernet", "🍯 Licores y Aperitivos", "0"},
	{"a78", "Frangelico", "🍯 Licores y Aperitivos", "0"},
	{"a79", "Hiervas Ibiza Mary Mayans", "🍯 Licores y Aperitivos", "0"},
	{"a80", "Jagermeister", "🍯 Licores y Aperitivos", "14.36"},
	{"a81", "Jet Wild Fruits", "🍯 Licores y Aperitivos", "0"},
	{"a82", "Kalhua", "🍯 Licores y Aperitivos", "14.02"},
	{"a83", "Licor 43", "🍯 Licores y Aperitivos", "15.88"},
	{"a84", "Licor de Cassís", "🍯 Licores y Aperitivos", "0"},
	{"a85", "Limoncello (Villa Massa)", "🍯 Licores y Aperitivos", "10.37"},
	{"a86", "Midori", "🍯 Licores y Aperitivos", "14.13"},
	{"a87", "Passoa", "🍯 Licores y Aperitivos", "13.68"},
	{"a88", "Patxaran", "🍯 Licores y Aperitivos", "8.5"},
	{"a89", "Pisco", "🍯 Licores y Aperitivos", "15.68"},
	{"a90", "Rua Vieja (crema)", "🍯 Licores y Aperitivos", "10.9"},
	{"a91", "Rua Vieja aguardiente", "🍯 Licores y Aperitivos", "8.18"},
	{"a92", "Rua Vieja café", "🍯 Licores y Aperitivos", "8.18"},
	{"a93", "Rua Vieja (Licor de hierbas)", "🍯 Licores y Aperitivos", "8.18"},
	{"a94", "Saint Germain", "🍯 Licores y Aperitivos", "26.08"},
	{"a95", "Santa Fe Grosella", "🍯 Licores y Aperitivos", "0"},
	{"a96", "Ratafia", "🍯 Licores y Aperitivos", "0"},
	{"a97", "Triple Sec (Caiman)", "🍯 Licores y Aperitivos", "8.3"},
	{"a98", "Martini Blanco", "🍷 Vermut", "7.45"},
	{"a99", "Martini Fiero", "🍷 Vermut", "0"},
	{"a100", "Martini Rosso", "🍷 Vermut", "7.45"},
	{"a101", "Martini Reserva", "🍷 Vermut", "0"},
	{"a102", "UNIQ Vermut", "🍷 Vermut", "0"},
	{"a103", "Vermut Negro", "🍷 Vermut", "0"},
	{"a104", "Vermut Miró blanco", "🍷 Vermut", "0"},
	{"a105", "Vermut Miró negro", "🍷 Vermut", "0"},
	{"a106", "Plana d'en fonoll (Sauvignon)", "🥂 Vinos y espumosos", "5.38"},
	{"a107", "Piedra (Verdejo)", "🥂 Vinos y espumosos", "0"},
	{"a108", "Bicicletas y Peces (Verdejo)", "🥂 Vinos y espumosos", "0"},
	{"a109", "Maricel (Malvasia de Sitges)", "🥂 Vinos y espumosos", "0"},
	{"a110", "Mar de Frades (Albariño)", "🥂 Vinos y espumosos", "11.85"},
	{"a111", "El Fanio 2022 (Xarel-lo)", "🥂 Vinos y espumosos", "9.95"},
	{"a112", "Albariño LAMEESPIÑAS", "🥂 Vinos y espumosos", "0"},
	{"a113", "MarT", "🥂 Vinos y espumosos", "9.3"},
	{"a114", "Savinat", "🥂 Vinos y espumosos", "15.3"},
	{"a115", "Malvasia Sitges", "🥂 Vinos y espumosos", "10.25"},
	{"a116", "Fenomenal", "🥂 Vinos y espumosos", "5.4"},
	{"a117", "Llagrimes (Gartnatxa)", "🥂 Vinos y espumosos", "0"},
	{"a118", "Maison Sainte Marguerite", "🥂 Vinos y espumosos", "16.67"},
	{"a119", "Sospechoso", "🥂 Vinos y espumosos", "6.3"},
	{"a120", "Sospechoso MAGNUM", "🥂 Vinos y espumosos", "0"},
	{"a121", "Miraval", "🥂 Vinos y espumosos", "0"},
	{"a122", "M Minuty", "🥂 Vinos y espumosos", "15.15"},
	{"a123", "Convento Oreja ( Ribera del Duero)", "🥂 Vinos y espumosos", "6.73"},
	{"a124", "Corbatera (Montsant)", "🥂 Vinos y espumosos", "13.7"},
	{"a125", "Plana d'en fonoll (Cabernet-Sauvignon)", "🥂 Vinos y espumosos", "0"},
	{"a126", "Azpilicueta", "🥂 Vinos y espumosos", "0"},
	{"a127", "Lagrimas de Maria (Tempranillo-Crianza)", "🥂 Vinos y espumosos", "5.42"},
	{"a128", "Pago Carrovejas", "🥂 Vinos y espumosos", "27.65"},
	{"a129", "Pruno", "🥂 Vinos y espumosos", "8.3"},
	{"a130", "Finca Villacreces", "🥂 Vinos y espumosos", "19.8"},
	{"a131", "Predicador", "🥂 Vinos y espumosos", "18.55"},
	{"a132", "El hombre bala", "🥂 Vinos y espumosos", "15.35"},
	{"a133", "Corimbo", "🥂 Vinos y espumosos", "17.85"},
	{"a134", "Corral de Campanas (TINTA DE TORO)", "🥂 Vinos y espumosos", "7.5"},
	{"a135", "Quinta Quietud (TINTA DE TORO)", "🥂 Vinos y espumosos", "13.97"},
	{"a136", "La MULA ( TINTA DE TORO)", "🥂 Vinos y espumosos", "0"},
	{"a137", "Castell de Ribes (CAVA) Rosado", "🥂 Vinos y espumosos", "5.29"},
	{"a138", "Castell de Ribes (CAVA) Blanco", "🥂 Vinos y espumosos", "5.29"},
	{"a139", "CAVA Gramona LUSTROS", "🥂 Vinos y espumosos", "26.6"},
	{"a140", "MUM CHAMPAGNE BRUT", "🥂 Vinos y espumosos", "35.61"},
	{"a141", "MUM CHAMPAGNE ROSE", "🥂 Vinos y espumosos", "42.91"},
	{"a142", "MUM CHAMPAGNE ICE", "🥂 Vinos y espumosos", "43.34"},
	{"a143", "MOET CHANDON BRUT", "🥂 Vinos y espumosos", "34.88"},
	{"a144", "MOET CHANDON ROSE", "🥂 Vinos y espumosos", "40.95"},
	{"a145", "MOET CHANDON ICE", "🥂 Vinos y espumosos", "42.82"},
	{"a146", "VEUVE CLICQUOT", "🥂 Vinos y espumosos", "38.36"},
	{"a147", "DOM PERIGNON", "🥂 Vinos y espumosos", "170.63"},
	{"a148", "Agua con Gas", "🥤Refrescos y agua", "0.96"},
	{"a149", "Agua sin gas 33", "🥤Refrescos y agua", "1.1"},
	{"a150", "Agua con gas 75", "🥤Refrescos y agua", "1.97"},
	{"a151", "Aquabona 33", "🥤Refrescos y agua", "0.36"},
	{"a152", "Aquabona 75", "🥤Refrescos y agua", "0"},
	{"a153", "Aquarius", "🥤Refrescos y agua", "0"},
	{"a154", "Aquarius Naranja", "🥤Refrescos y agua", "1.42"},
	{"a155", "Arandanos 1 Lt", "🥤Refrescos y agua", "1.42"},
	{"a156", "Bitter Kas", "🥤Refrescos y agua", "1.05"},
	{"a157", "Coca Cola", "🥤Refrescos y agua", "0"},
	{"a158", "Coca Cola Zero", "🥤Refrescos y agua", "1.18"},
	{"a159", "Granini Naranja 1 Lt", "🥤Refrescos y agua", "0"},
	{"a160", "Lipton", "🥤Refrescos y agua", "0.93"},
	{"a161", "Minute Maid Tomate", "🥤Refrescos y agua", "1.17"},
	{"a162", "Minute Maid Naranja", "🥤Refrescos y agua", "1.17"},
	{"a163", "Minute Maid Piña", "🥤Refrescos y agua", "1.17"},
	{"a164", "Red Bull", "🥤Refrescos y agua", "0"},
	{"a165", "Red Bull Sin Azucar", "🥤Refrescos y agua", "0"},
	{"a166", "Red Bull Rojo", "🥤Refrescos y agua", "0"},
	{"a167", "Pepsi", "🥤Refrescos y agua", "1.03"},
	{"a168", "Pepsi sin azucar", "🥤Refrescos y agua", "0"},
	{"a169", "Pomelo 1 Lt", "🥤Refrescos y agua", "1.42"},
	{"a170", "Schweppes Ginger Ale", "🥤Refrescos y agua", "1.08"},
	{"a171", "Schweppes Ginger Beer", "🥤Refrescos y agua", "1.8"},
	{"a172", "Schweppes Limon", "🥤Refrescos y agua", "0.88"},
	{"a173", "Schweppes Naranja", "🥤Refrescos y agua", "0.88"},
	{"a174", "Schweppes Pomelo", "🥤Refrescos y agua", "1.8"},
	{"a175", "Schweppes Soda", "🥤Refrescos y agua", "1.08"},
	{"a176", "Schweppes Tonica", "🥤Refrescos y agua", "1.08"},
	{"a177", "Schweppes Tonica 0%", "🥤Refrescos y agua", "1.08"},
	{"a178", "Sprite", "🥤Refrescos y agua", "1.18"},
	{"a179", "Tomate 1 Lt", "🥤Refrescos y agua", "1.42"},
	{"a180", "7up", "🥤Refrescos y agua", "1.18"},
	{"a181", "Moritz 7", "🍻 Cerveza", "0.65"},
	{"a182", "Moritz EPIDOR", "🍻 Cerveza", "1.62"},
	{"a183", "Moritz 0%", "🍻 Cerveza", "1.64"},
	{"a184", "Ambar Gluten free", "🍻 Cerveza", "1.46"},
	{"a185", "Ambar Triple 0 Tostada", "🍻 Cerveza", "0"},
	{"a186", "Barril Moritz 30Lt", "🍻 Cerveza", "115.71"},
	{"a187", "Barril Moritz Radler 30 Lt", "🍻 Cerveza", "138.69"},
	{"a188", "BARRIL 500LT", "🍻 Cerveza", "1005"},
	{"m1", "Vasos", "📦 Material", "0"},
	{"m2", "Chupitos", "📦 Material", "0"},
	{"m3", "Pajitas", "📦 Material", "0"},
}

// SeedCatalog returns the standard catalog with every location at zero.
func SeedCatalog() []InventoryItem {
	out := make([]InventoryItem, 0, len(seedRows))
	for _, r := range seedRows {
		out = append(out, InventoryItem{
			ID:              r.id,
			Name:            r.name,
			Category:        r.category,
			UnitPrice:       decimal.RequireFromString(r.price),
			StockByLocation: EmptyStock(),
		})
	}
	return out
}
