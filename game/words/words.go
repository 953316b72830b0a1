// Package words holds the static word packs and draws candidate words for
// the choosing phase.
package words

import (
	"math/rand"
	"time"
)

var packs = map[string][]string{
	"Easy": {
		"apple", "car", "dog", "cat", "house", "tree", "sun", "fish", "star", "book",
		"shoe", "ball", "hat", "cup", "cake", "chair", "bed", "bird", "milk", "banana",
		"bat", "bee", "bus", "cake", "cloud", "cow", "crab", "cup", "duck", "egg",
		"eye", "fan", "flag", "frog", "goat", "gold", "hand", "hat", "ice", "key",
		"leaf", "lion", "lock", "moon", "nose", "oven", "pear", "pen", "pig", "ring",
		"rose", "shoe", "snow", "sock", "star", "sun", "tank", "tent", "tree", "truck",
		"worm", "zebra",
	},
	"Normal": {
		"banana", "bottle", "candle", "pillow", "rabbit", "spoon", "turtle", "wallet", "zebra", "ladder",
		"puzzle", "guitar", "island", "jacket", "mountain", "camera", "pencil", "window", "rocket", "cloud",
		"train", "bottle", "candle", "pillow", "rabbit", "spoon", "turtle", "wallet", "ladder", "puzzle",
		"anchor", "angel", "ankle", "ant", "apron", "arrow", "baby", "bag", "balloon", "beach", "beard",
		"bench", "bison", "blanket", "blimp", "broom", "brush", "bucket", "butter", "camel", "candy",
		"castle", "cheese", "cherry", "chicken", "circle", "clown", "cookie", "couch", "crown", "diamond",
		"dolphin", "dragon", "drum", "eagle", "elbow", "engine", "feather", "fence", "flute", "giraffe",
		"glove", "grape", "hammer", "helmet", "hippo", "hockey", "jelly", "jungle", "kangaroo", "kitten",
		"ladder", "lemon", "lettuce", "lobster", "magnet", "marble", "mirror", "monkey", "mushroom", "needle",
		"octopus", "ostrich", "panda", "parrot", "peach", "peanut", "penguin", "piano", "pirate", "pizza",
		"planet", "plumber", "pocket", "potato", "pumpkin", "rabbit", "rainbow", "robot", "rocket", "sailor",
		"scarf", "scissors", "shark", "sheep", "skate", "skull", "snail", "snake", "snowman", "spider",
		"squirrel", "stamp", "straw", "swan", "sword", "tiger", "toaster", "tooth", "tractor", "trophy",
		"turtle", "umbrella", "vampire", "violin", "volcano", "wallet", "whale", "window", "witch", "wolf",
		"zebra",
	},
	"Moderate": {
		"accordion", "airplane", "alligator", "ambulance", "anaconda", "apocalypse", "aquarium", "archaeologist",
		"astronaut", "avocado", "backpack", "ballerina", "balloon", "barbecue", "barnacle", "baseball",
		"basketball", "binoculars", "blueberry", "boomerang", "broomstick", "bubblegum", "butterfly", "cabbage",
		"calculator", "caterpillar", "centipede", "chainsaw", "champagne", "chandelier", "cheeseburger",
		"chimpanzee", "chocolate", "clarinet", "cockroach", "coconut", "compass", "computer", "crocodile",
		"cupcake", "dandelion", "dinosaur", "dolphin", "dragonfly", "earphones", "electricity", "elephant",
		"fireplace", "firetruck", "flashlight", "flamingo", "fountain", "furniture", "giraffe", "glitter",
		"hamburger", "helicopter", "honeycomb", "ice cream", "jellyfish", "lighthouse", "lobster", "lollipop",
		"macaroni", "marathon", "microscope", "motorcycle", "mushroom", "octopus", "ostrich", "parachute",
		"parrot", "peacock", "penguin", "piano", "pineapple", "platypus", "porcupine", "pyramid", "quarantine",
		"rainforest", "refrigerator", "rhinoceros", "rollercoaster", "saxophone", "scarecrow", "scorpion",
		"seahorse", "skateboard", "spaceship", "spaghetti", "sphinx", "submarine", "sunglasses", "telescope",
		"thermometer", "toothbrush", "toothpaste", "tornado", "trampoline", "triceratops", "trombone",
		"turtle", "umbrella", "unicorn", "vampire", "volcano", "watermelon", "wheelbarrow", "windmill",
		"xylophone", "yacht", "zookeeper",
	},
	"Hard": {
		"archaeologist", "asymmetry", "binoculars", "camouflage", "chameleon", "doppelganger", "hieroglyph",
		"labyrinth", "microscope", "parachute", "pharaoh", "quarantine", "quasar", "saxophone", "skateboard",
		"spaceship", "submarine", "tesseract", "trombone", "tsunami", "vortex", "wildebeest", "xylophone",
		"zeppelin", "accordion", "apocalypse", "astronaut", "camouflage", "chandelier", "doppelganger",
		"electricity", "firefighter", "fireplace", "hamburger", "helicopter", "hieroglyph", "labyrinth",
		"lighthouse", "microscope", "motorcycle", "parachute", "pharaoh", "quarantine", "rollercoaster",
		"saxophone", "skateboard", "spaceship", "submarine", "tesseract", "trombone", "tsunami", "vortex",
		"wildebeest", "xylophone", "zeppelin",
	},
}

// Supply draws candidate words for the drawer to choose from.
type Supply struct {
	rng *rand.Rand
}

func NewSupply() *Supply {
	return &Supply{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewSupplyWithSource is used by tests that need a deterministic draw.
func NewSupplyWithSource(src rand.Source) *Supply {
	return &Supply{rng: rand.New(src)}
}

// Draw returns up to count words from the custom list concatenated with the
// difficulty pack, shuffled. An unknown difficulty falls back to Normal.
func (s *Supply) Draw(difficulty string, custom []string, count int) []string {
	pack, ok := packs[difficulty]
	if !ok {
		pack = packs["Normal"]
	}
	pool := make([]string, 0, len(custom)+len(pack))
	pool = append(pool, custom...)
	pool = append(pool, pack...)
	s.rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	if count > len(pool) {
		count = len(pool)
	}
	return pool[:count]
}
