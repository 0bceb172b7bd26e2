package engine

// KokoroVoices lists the voices of the kokoro v1.0 voice bank.
// The first letter is the language, the second the gender.
var KokoroVoices = []string{
	"af_alloy", "af_aoede", "af_bella", "af_heart", "af_jessica", "af_kore", "af_nicole", "af_nova", "af_river", "af_sarah", "af_sky",
	"am_adam", "am_echo", "am_eric", "am_fenrir", "am_liam", "am_michael", "am_onyx", "am_puck", "am_santa",
	"bf_alice", "bf_emma", "bf_isabella", "bf_lily",
	"bm_daniel", "bm_fable", "bm_george", "bm_lewis",
	"ef_dora", "em_alex", "em_santa",
	"ff_siwis",
	"hf_alpha", "hf_beta", "hm_omega", "hm_psi",
	"if_sara", "im_nicola",
	"jf_alpha", "jf_gongitsune", "jf_nezumi", "jf_tebukuro", "jm_kumo",
	"pf_dora", "pm_alex", "pm_santa",
	"zf_xiaobei", "zf_xiaoni", "zf_xiaoxiao", "zf_xiaoyi",
}

// kokoroLanguages maps the voice prefix to the language code kokoro expects.
var kokoroLanguages = map[byte]string{
	'a': "en-us",
	'b': "en-gb",
	'e': "es",
	'f': "fr-fr",
	'h': "hi",
	'i': "it",
	'j': "ja",
	'p': "pt-br",
	'z': "cmn",
}

// KokoroVoiceLanguage returns the language a kokoro voice was trained for.
func KokoroVoiceLanguage(voice string) (string, bool) {
	if len(voice) < 3 || voice[2] != '_' {
		return "", false
	}
	lang, ok := kokoroLanguages[voice[0]]
	return lang, ok
}
