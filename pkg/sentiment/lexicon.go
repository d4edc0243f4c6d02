package sentiment

// defaultLexicon maps opinion words to polarity weights. Strong words
// sit near +-1, mild ones near +-0.3. Tuned for the short promotional
// register of social posts.
var defaultLexicon = map[string]float64{
	// positive
	"amazing":      0.9,
	"awesome":      0.9,
	"beautiful":    0.7,
	"best":         0.8,
	"better":       0.4,
	"breakthrough": 0.7,
	"brilliant":    0.9,
	"celebrate":    0.6,
	"delicious":    0.7,
	"enjoy":        0.5,
	"enjoyed":      0.5,
	"excellent":    0.9,
	"excited":      0.6,
	"exciting":     0.6,
	"fantastic":    0.9,
	"favorite":     0.6,
	"fresh":        0.4,
	"fun":          0.5,
	"glad":         0.4,
	"good":         0.4,
	"great":        0.6,
	"happy":        0.6,
	"healthy":      0.4,
	"helpful":      0.4,
	"impressive":   0.7,
	"incredible":   0.9,
	"inspiring":    0.7,
	"love":         0.8,
	"loved":        0.8,
	"lovely":       0.6,
	"nice":         0.4,
	"perfect":      0.9,
	"popular":      0.3,
	"proud":        0.5,
	"recommend":    0.5,
	"stunning":     0.8,
	"success":      0.6,
	"successful":   0.6,
	"tasty":        0.6,
	"thank":        0.4,
	"thanks":       0.4,
	"thrilled":     0.8,
	"win":          0.5,
	"winner":       0.6,
	"wonderful":    0.8,
	"wow":          0.6,

	// negative
	"angry":         -0.6,
	"awful":         -0.8,
	"bad":           -0.4,
	"boring":        -0.5,
	"broken":        -0.5,
	"crash":         -0.5,
	"crisis":        -0.6,
	"disappointed":  -0.6,
	"disappointing": -0.6,
	"disaster":      -0.8,
	"dirty":         -0.5,
	"fail":          -0.6,
	"failed":        -0.6,
	"failure":       -0.6,
	"fake":          -0.5,
	"fear":          -0.5,
	"hate":          -0.8,
	"horrible":      -0.9,
	"hurt":          -0.5,
	"lose":          -0.4,
	"loss":          -0.4,
	"lost":          -0.4,
	"mess":          -0.4,
	"nasty":         -0.6,
	"pathetic":      -0.7,
	"poor":          -0.4,
	"problem":       -0.3,
	"problems":      -0.3,
	"rude":          -0.5,
	"sad":           -0.5,
	"scam":          -0.8,
	"scandal":       -0.6,
	"slow":          -0.3,
	"terrible":      -0.9,
	"tired":         -0.3,
	"ugly":          -0.6,
	"unfair":        -0.5,
	"upset":         -0.5,
	"waste":         -0.5,
	"worse":         -0.5,
	"worst":         -0.8,
	"wrong":         -0.4,
}

// defaultNegations flips the polarity of the next opinion word.
var defaultNegations = map[string]bool{
	"not":     true,
	"no":      true,
	"never":   true,
	"cannot":  true,
	"can't":   true,
	"don't":   true,
	"doesn't": true,
	"didn't":  true,
	"won't":   true,
	"isn't":   true,
	"wasn't":  true,
	"aren't":  true,
	"weren't": true,
	"hardly":  true,
	"barely":  true,
	"without": true,
}

// defaultBoosters scale the next opinion word's weight.
var defaultBoosters = map[string]float64{
	"very":       1.5,
	"really":     1.5,
	"so":         1.3,
	"extremely":  1.8,
	"absolutely": 1.8,
	"totally":    1.5,
	"super":      1.6,
	"incredibly": 1.8,
}
