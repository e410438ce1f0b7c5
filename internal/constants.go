package internal

const MaxFontDataSize = (32 << 20) // checked against the ungzipped data; the compressed input size is not checked
const MaxGlyphs = 56789
const MaxKerningPairsPerGlyph = 64
