package circuits

// Literal DNA for the four sequenced parts of the characterization circuit.
const (
	craU6Elements = "GGTTTACCGAGCTCTTATTGGTTTTCAAACTTCATTGACTGTGCC" +
		"AAGGTCGGGCAGGAAGAGGGCCTATTTCCCATGATTCCTTCATAT" +
		"TTGCATATACGATACAAGGCTGTTAGAGAGATAATTAGAATTAAT" +
		"TTGACTGTAAACACAAAGATATTAGTACAAAATACGTGACGTAGA" +
		"AAGTAATAATTTCTTGGGTAGTTTGCAGTTTTAAAATTATGTTTT" +
		"AAAATGGACTATCATATGCTTACCGTAACTTGAAATATAGAACCG" +
		"ATCCTCCCATTGGTATATATTATAGAACCGATCCTCCCATTGGCT" +
		"TGTGGAAAGGACGAAACACCGTACCTCATCAGGAACATGTGTTTA" +
		"AGAGCTATGCTGGAAACAGCAGAAATAGCAAGTTTAAATAAGGCT" +
		"AGTCCGTTATCAACTTGAAAAAGTGGCACCGAGTCGGTGCTTTTT" +
		"TTGGTGCGTTTTTATGCTTGTAGTATTGTATAATGTTTTT"

	gRNABElements = "AAGGTCGGGCAGGAAGAGGGCCTATTTCCCATGATTCCTTCATAT" +
		"TTGCATATACGATACAAGGCTGTTAGAGAGATAATTAGAATTAAT" +
		"TTGACTGTAAACACAAAGATATTAGTACAAAATACGTGACGTAGA" +
		"AAGTAATAATTTCTTGGGTAGTTTGCAGTTTTAAAATTATGTTTT" +
		"AAAATGGACTATCATATGCTTACCGTAACTTGAAAGTATTTCGAT" +
		"TTCTTGGCTTTATATATCTTGTGGAAAGGACGAAACACCGTACCT" +
		"CATCAGGAACATGTGTTTAAGAGCTATGCTGGAAACAGCAGAAAT" +
		"AGCAAGTTTAAATAAGGCTAGTCCGTTATCAACTTGAAAAAGTGG" +
		"CACCGAGTCGGTGCTTTTTTT"

	mKateElements = "TCTAAGGGCGAAGAGCTGATTAAGGAGAACATGCACATGAAGCTG" +
		"TACATGGAGGGCACCGTGAACAACCACCACTTCAAGTGCACATCC" +
		"GAGGGCGAAGGCAAGCCCTACGAGGGCACCCAGACCATGAGAATC" +
		"AAGGTGGTCGAGGGCGGCCCTCTCCCCTTCGCCTTCGACATCCTG" +
		"GCTACCAGCTTCATGTACGGCAGCAAAACCTTCATCAACCACACC" +
		"CAGGGCATCCCCGACTTCTTTAAGCAGTCCTTCCCTGAGGTAAGT" +
		"GGTCCTACCTCATCAGGAACATGTGTTTTAGAGCTAGAAATAGCA" +
		"AGTTAAAATAAGGCTAGTCCGTTATCAACTTGAAAAAGTGGCACC" +
		"GAGTCGGTGCTACTAACTCTCGAGTCTTCTTTTTTTTTTTCACAG" +
		"GGCTTCACATGGGAGAGAGTCACCACATACGAAGACGGGGGCGTG" +
		"CTGACCGCTACCCAGGACACCAGCCTCCAGGACGGCTGCCTCATC" +
		"TACAACGTCAAGATCAGAGGGGTGAACTTCCCATCCAACGGCCCT" +
		"GTGATGCAGAAGAAAACACTCGGCTGGGAGGCCTCCACCGAGATG" +
		"CTGTACCCCGCTGACGGCGGCCTGGAAGGCAGAAGCGACATGGCC" +
		"CTGAAGCTCGTGGGCGGGGGCCACCTGATCTGCAACTTGAAGACC" +
		"ACATACAGATCCAAGAAACCCGCTAAGAACCTCAAGATGCCCGGC" +
		"GTCTACTATGTGGACAGAAGACTGGAAAGAATCAAGGAGGCCGAC" +
		"AAAGAGACCTACGTCGAGCAGCACGAGGTGGCTGTGGCCAGATAC" +
		"TGCG"

	crpBElements = "GCTCCGAATTTCTCGACAGATCTCATGTGATTACGCCAAGCTACG" +
		"GGCGGAGTACTGTCCTCCGAGCGGAGTACTGTCCTCCGAGCGGAG" +
		"TACTGTCCTCCGAGCGGAGTACTGTCCTCCGAGCGGAGTTCTGTC" +
		"CTCCGAGCGGAGACTCTAGATACCTCATCAGGAACATGTTGGAAT" +
		"TCTAGGCGTGTACGGTGGGAGGCCTATATAAGCAGAGCTCGTTTA" +
		"GTGAACCGTCAGATCGCCTCGAGTACCTCATCAGGAACATGTTGG" +
		"ATCCAATTCGACC"
)
